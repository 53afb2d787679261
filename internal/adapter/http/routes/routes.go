package routes

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"time"

	_ "remodel_calc/docs"
	"remodel_calc/internal/adapter/http/handlers"
	"remodel_calc/internal/adapter/http/middleware"
	"remodel_calc/internal/adapter/persistence/repository"
	"remodel_calc/internal/config"
	"remodel_calc/internal/infrastructure/database"
	"remodel_calc/internal/infrastructure/payments"
	"remodel_calc/internal/usecase"
	"remodel_calc/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var localhostOrigin = regexp.MustCompile(`^https?://localhost(:\d+)?$`)

// Dependencies are the use cases served over HTTP.
type Dependencies struct {
	Projects usecase.IProjectUseCase
}

// Run wires the application from cfg and serves it until the listener fails.
func Run(cfg config.Config) error {
	gin.SetMode(cfg.GinMode)

	deps, err := buildDependencies(cfg)
	if err != nil {
		return err
	}

	router := NewRouter(cfg, deps)
	log.Printf("[http][routes] listening port=%d", cfg.Port)
	return router.Run(":" + strconv.Itoa(cfg.Port))
}

// NewRouter builds the gin engine with middlewares, swagger and /v1 routes.
func NewRouter(cfg config.Config, deps Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	if cfg.JWTSecret == "" {
		log.Printf("[http][routes] JWT_SECRET not set; authenticated routes will reject every request")
	}
	authed := v1.Group("", middleware.Auth([]byte(cfg.JWTSecret)))
	addProjectRoutes(authed, handlers.NewProjectHandler(deps.Projects))

	return router
}

func buildDependencies(cfg config.Config) (Dependencies, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return Dependencies{}, err
	}
	projectRepo := repository.NewProjectDynamoRepository(ddb, cfg.ProjectsTable)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(payments.Options{
		AccessToken: cfg.MercadoPagoAccessToken,
		Mock:        cfg.PaymentGatewayMock,
	})
	if err != nil {
		log.Printf("[http][routes] Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	return Dependencies{
		Projects: usecase.NewProjectUseCase(projectRepo, paymentGateway, nil),
	}, nil
}

func setMiddlewares(router *gin.Engine, cfg config.Config) {
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[http][routes] recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowLocalhost {
		c.AllowOriginFunc = localhostOrigin.MatchString
	}
	return c
}
