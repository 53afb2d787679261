package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	response "remodel_calc/internal/adapter/http/dto/response"
	"remodel_calc/internal/adapter/http/middleware"
	"remodel_calc/pkg"

	"github.com/gin-gonic/gin"
)

// SettlePayment charges one ledger entry through the payment gateway.
//
// The body is a Mercado Pago payment request, either bare or wrapped as
// {"mp_payload": {...}}.
//
//	@Summary	Charge an unpaid ledger entry through Mercado Pago
//	@Tags		payments
//	@Security	Bearer
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string	true	"Project ID"
//	@Param		index	path		int		true	"Ledger entry index"
//	@Param		body	body		object	true	"Mercado Pago payment request"
//	@Success	200		{object}	response.ProjectResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Failure	402		{object}	pkg.HTTPError
//	@Failure	404		{object}	pkg.HTTPError
//	@Failure	409		{object}	pkg.HTTPError
//	@Failure	502		{object}	pkg.HTTPError
//	@Failure	503		{object}	pkg.HTTPError
//	@Router		/projects/{id}/payments/{index}/settle [post]
func (h *ProjectHandler) SettlePayment(c *gin.Context) {
	id := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid payment index", http.StatusBadRequest))
		return
	}
	log.Printf("[payment][handler] settle start project_id=%s index=%d", id, index)

	mpPayload, err := readMPPayload(c)
	if err != nil {
		log.Printf("[payment][handler] invalid payload project_id=%s err=%v", id, err)
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
		return
	}

	p, err := h.usecase.SettlePayment(c.Request.Context(), middleware.UserID(c), id, index, mpPayload)
	if err != nil {
		log.Printf("[payment][handler] settle failed project_id=%s index=%d err=%v", id, index, err)
		writeError(c, mapProjectError(err))
		return
	}
	log.Printf("[payment][handler] settle success project_id=%s index=%d total_paid=%.2f", id, index, p.Settings.TotalPaid)

	c.JSON(http.StatusOK, response.FromProject(p))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if s := strings.TrimSpace(string(wrapped)); s == "" || s == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
