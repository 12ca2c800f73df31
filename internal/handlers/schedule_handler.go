package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/dto"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
	ucSchedule "github.com/BruksfildServices01/barber-agenda/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type shopReader interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
}

type ScheduleHandler struct {
	shops      shopReader
	get        *ucSchedule.GetSchedule
	weekly     *ucSchedule.SyncWeekly
	daily      *ucSchedule.SyncDaily
	exceptions *ucSchedule.Exceptions
}

func NewScheduleHandler(
	shops shopReader,
	get *ucSchedule.GetSchedule,
	weekly *ucSchedule.SyncWeekly,
	daily *ucSchedule.SyncDaily,
	exceptions *ucSchedule.Exceptions,
) *ScheduleHandler {
	setupValidator()

	return &ScheduleHandler{
		shops:      shops,
		get:        get,
		weekly:     weekly,
		daily:      daily,
		exceptions: exceptions,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SyncWeeklyRequest struct {
	Entries []dto.WeeklyEntryDTO `json:"entries" binding:"omitempty,dive"`
}

type SyncDailyRequest struct {
	Entries []dto.DailyEntryDTO `json:"entries" binding:"omitempty,dive"`
}

type AddExceptionRequest struct {
	Date      string `json:"date" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=blocked extended BLOCKED EXTENDED"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason" binding:"omitempty,max=255"`
}

// ======================================================
// READ
// ======================================================

// Get devolve o semanal e as datas a partir de ?from= (padrão: hoje na barbearia).
func (h *ScheduleHandler) Get(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	from := c.Query("from")
	if from == "" {
		shop, err := h.shops.GetBarbershopByID(c.Request.Context(), barbershopID)
		if err != nil {
			respondError(c, err)
			return
		}
		from = timezone.NowIn(shop.Timezone).Format(schedule.DateLayout)
	} else if _, err := schedule.ParseDate(from); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.get.Execute(c.Request.Context(), barberID, from)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, view)
}

// ======================================================
// SYNC
// ======================================================

func (h *ScheduleHandler) SyncWeekly(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var req SyncWeeklyRequest
	if !bindJSON(c, &req) {
		return
	}

	entries, err := h.weekly.Execute(
		c.Request.Context(),
		barbershopID,
		barberID,
		dto.WeeklyModels(req.Entries),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *ScheduleHandler) SyncDaily(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var req SyncDailyRequest
	if !bindJSON(c, &req) {
		return
	}

	entries, err := h.daily.Execute(
		c.Request.Context(),
		barbershopID,
		barberID,
		c.Param("date"),
		dto.DailyModels(req.Entries),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *ScheduleHandler) ClearDaily(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	if err := h.daily.Clear(c.Request.Context(), barbershopID, barberID, c.Param("date")); err != nil {
		respondError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *ScheduleHandler) AddException(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var req AddExceptionRequest
	if !bindJSON(c, &req) {
		return
	}

	ex, err := h.exceptions.Add(c.Request.Context(), barbershopID, barberID, models.ScheduleException{
		Date:      req.Date,
		Type:      req.Type,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, ex)
}

func (h *ScheduleHandler) RemoveException(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.exceptions.Remove(c.Request.Context(), barbershopID, barberID, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	httpresp.NoContent(c)
}
