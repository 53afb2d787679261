package routes

import (
	"remodel_calc/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProjects  = "/projects"
	PathEstimates = "/estimates"
)

func addProjectRoutes(rg *gin.RouterGroup, projectHandler *handlers.ProjectHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("/quote", projectHandler.Quote)
	}

	projects := rg.Group(PathProjects)
	{
		projects.POST("", projectHandler.Create)
		projects.GET("", projectHandler.List)
		projects.GET("/:id", projectHandler.Get)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)
		projects.GET("/:id/export", projectHandler.Export)
		projects.POST("/:id/payments/:index/settle", projectHandler.SettlePayment)
	}
}
