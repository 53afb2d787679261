package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	request "remodel_calc/internal/adapter/http/dto/request"
	response "remodel_calc/internal/adapter/http/dto/response"
	"remodel_calc/internal/adapter/http/middleware"
	"remodel_calc/internal/domain/costing"
	"remodel_calc/internal/infrastructure/export"
	"remodel_calc/internal/usecase"
	"remodel_calc/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidProjectPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid project payload", http.StatusBadRequest)
)

// ProjectHandler serves remodeling project estimates.
type ProjectHandler struct {
	usecase usecase.IProjectUseCase
	now     func() time.Time
}

func NewProjectHandler(uc usecase.IProjectUseCase) *ProjectHandler {
	return &ProjectHandler{usecase: uc, now: time.Now}
}

// Quote prices categories and settings without saving anything.
//
//	@Summary	Price categories and settings without saving
//	@Tags		estimates
//	@Security	Bearer
//	@Accept		json
//	@Produce	json
//	@Param		body	body		request.QuoteRequest	true	"Categories and settings"
//	@Success	200		{object}	response.QuoteResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Failure	401		{object}	pkg.HTTPError
//	@Router		/estimates/quote [post]
func (h *ProjectHandler) Quote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	q, err := h.usecase.Quote(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// Create validates, prices and saves a project for the caller.
//
//	@Summary	Validate, price and save a project
//	@Tags		projects
//	@Security	Bearer
//	@Accept		json
//	@Produce	json
//	@Param		body	body		request.ProjectRequest	true	"Project"
//	@Success	201		{object}	response.ProjectResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Router		/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var payload request.ProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	p, err := h.usecase.Create(c.Request.Context(), middleware.UserID(c), payload.ToInput())
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromProject(p))
}

// List returns summaries of the caller's projects.
//
//	@Summary	List the caller's projects
//	@Tags		projects
//	@Security	Bearer
//	@Produce	json
//	@Success	200	{array}		response.ProjectSummaryResponse
//	@Failure	401	{object}	pkg.HTTPError
//	@Router		/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	ps, err := h.usecase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProjectSummaries(ps))
}

// Get returns one of the caller's projects.
//
//	@Summary	Get a project
//	@Tags		projects
//	@Security	Bearer
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	response.ProjectResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

// Update replaces and reprices a project. settings.payments may be the ledger
// returned by a previous read: the synthesized deposit row is skipped and
// providerPaymentId is kept.
//
//	@Summary		Replace and reprice a project
//	@Description	Computed settings fields are ignored. Paid rows noted "Deposit payment" are skipped while a deposit is set.
//	@Tags			projects
//	@Security		Bearer
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project ID"
//	@Param			body	body		request.ProjectRequest	true	"Project"
//	@Success		200		{object}	response.ProjectResponse
//	@Failure		400		{object}	pkg.HTTPError
//	@Failure		404		{object}	pkg.HTTPError
//	@Router			/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var payload request.ProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	p, err := h.usecase.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProject(p))
}

// Delete removes one of the caller's projects.
//
//	@Summary	Delete a project
//	@Tags		projects
//	@Security	Bearer
//	@Param		id	path	string	true	"Project ID"
//	@Success	204
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Export downloads the project as an xlsx workbook.
//
//	@Summary	Download the estimate as an xlsx workbook
//	@Tags		projects
//	@Security	Bearer
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		id	path	string	true	"Project ID"
//	@Success	200
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/projects/{id}/export [get]
func (h *ProjectHandler) Export(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}

	now := h.now()
	f, err := export.EstimateWorkbook(p, now)
	if err != nil {
		log.Printf("[project][handler] export failed project_id=%s err=%v", p.ID, err)
		writeError(c, pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError))
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("[project][handler] export write failed project_id=%s err=%v", p.ID, err)
		writeError(c, pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.Filename(p, now))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapProjectError(err error) *pkg.AppError {
	var ve *costing.ValidationError
	switch {
	case errors.As(err, &ve):
		return pkg.NewDomainError("INVALID_PROJECT", "Project failed validation", err, http.StatusBadRequest).WithDetails(ve.Details()...)
	case errors.Is(err, costing.ErrInvalidCostCalculation):
		return pkg.NewDomainError("INVALID_COST_CALCULATION", "Invalid cost calculations", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProjectID), errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidUserID):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentAlreadyPaid):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_PAID", "Payment already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "Payment not approved by provider", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "Payment gateway not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
