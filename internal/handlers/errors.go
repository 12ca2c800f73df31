package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

type businessMapping struct {
	status  int
	message string
}

var businessErrors = map[string]businessMapping{
	"barbershop_not_found":     {http.StatusNotFound, "Barbearia não encontrada."},
	"barber_not_found":         {http.StatusNotFound, "Barbeiro não encontrado."},
	"appointment_not_found":    {http.StatusNotFound, "Agendamento não encontrado."},
	"exception_not_found":      {http.StatusNotFound, "Exceção de agenda não encontrada."},
	"product_not_found":        {http.StatusBadRequest, "Serviço inválido ou inativo."},
	"exception_already_exists": {http.StatusConflict, "Já existe uma exceção para esta data."},
	"invalid_state":            {http.StatusConflict, "O agendamento não permite esta operação no estado atual."},
	"not_manual_entry":         {http.StatusBadRequest, "Somente lançamentos manuais podem ser desfeitos."},
}

// respondError traduz os erros de domínio para HTTP. Só erros inesperados
// chegam ao log como falha.
func respondError(c *gin.Context, err error) {
	if ve, ok := httperr.AsValidation(err); ok {
		httperr.BadRequest(c, ve.Code, ve.Message)
		return
	}

	var conflict domain.ConflictError
	if errors.As(err, &conflict) {
		r := domain.ReasonSlotUnavailable
		httperr.Conflict(c, r.Code(), r.Message())
		return
	}

	if pe, ok := domain.AsPolicy(err); ok {
		httperr.Unprocessable(c, pe.Reason.Code(), pe.Reason.Message())
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		if m, ok := businessErrors[be.Code]; ok {
			httperr.Write(c, m.status, be.Code, m.message)
			return
		}
		httperr.BadRequest(c, be.Code, "Operação não permitida.")
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("route", c.FullPath()).
		Msg("request failed")
	_ = c.Error(err)

	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}
