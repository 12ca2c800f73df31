package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	shops    shopReader
	recorder *audit.Recorder
}

func NewAuditLogsHandler(shops shopReader, recorder *audit.Recorder) *AuditLogsHandler {
	return &AuditLogsHandler{shops: shops, recorder: recorder}
}

// List filtra por action, entity e período (?from=&to= em AAAA-MM-DD, no fuso da barbearia).
func (h *AuditLogsHandler) List(c *gin.Context) {
	_, barbershopID := middleware.Identity(c)

	shop, err := h.shops.GetBarbershopByID(c.Request.Context(), barbershopID)
	if err != nil {
		respondError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		BarbershopID: barbershopID,
		Action:       c.Query("action"),
		Entity:       c.Query("entity"),
		Page:         page,
		Limit:        limit,
	}

	if v := c.Query("from"); v != "" {
		from, err := timezone.ParseDate(shop.Timezone, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		f.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := timezone.ParseDate(shop.Timezone, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		f.To = to.AddDate(0, 0, 1)
	}

	logs, total, err := h.recorder.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
