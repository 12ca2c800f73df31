package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
	confirm      *ucAppointment.ConfirmAppointment
	complete     *ucAppointment.CompleteAppointment
	payment      *ucAppointment.ConfirmPayment
	cancel       *ucAppointment.CancelAppointment
	retract      *ucAppointment.RetractAppointment
	listByDate   *ucAppointment.ListAppointmentsByDate
	listByMonth  *ucAppointment.ListAppointmentsByMonth
}

type AppointmentUseCases struct {
	Availability *ucAppointment.GetAvailability
	Create       *ucAppointment.CreateAppointment
	Confirm      *ucAppointment.ConfirmAppointment
	Complete     *ucAppointment.CompleteAppointment
	Payment      *ucAppointment.ConfirmPayment
	Cancel       *ucAppointment.CancelAppointment
	Retract      *ucAppointment.RetractAppointment
	ListByDate   *ucAppointment.ListAppointmentsByDate
	ListByMonth  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	setupValidator()

	return &AppointmentHandler{
		availability: uc.Availability,
		create:       uc.Create,
		confirm:      uc.Confirm,
		complete:     uc.Complete,
		payment:      uc.Payment,
		cancel:       uc.Cancel,
		retract:      uc.Retract,
		listByDate:   uc.ListByDate,
		listByMonth:  uc.ListByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1,dive,gt=0"`
	Date        string `json:"date" binding:"required"`
	ClientName  string `json:"client_name" binding:"required,max=100"`
	ClientPhone string `json:"client_phone" binding:"omitempty,max=20"`
	Notes       string `json:"notes" binding:"omitempty,max=255"`
	IsOverride  bool   `json:"is_override"`
}

type AvailabilityQuery struct {
	Date       string `form:"date" binding:"required"`
	ServiceIDs []uint `form:"service_id" binding:"required,min=1,dive,gt=0"`
}

type MonthQuery struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required"`
}

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var q AvailabilityQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ServiceIDs:   q.ServiceIDs,
		Date:         q.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CREATE (lançamento manual)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ServiceIDs:   req.ServiceIDs,
		Start:        req.Date,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		Notes:        req.Notes,
		Origin:       domain.OriginManual,
		IsOverride:   req.IsOverride,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	aps, err := h.listByDate.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var q MonthQuery
	if !bindQuery(c, &q) {
		return
	}

	aps, err := h.listByMonth.Execute(c.Request.Context(), barberID, barbershopID, q.Year, q.Month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         q.Year,
		"month":        q.Month,
		"appointments": aps,
	})
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete.Execute)
}

func (h *AppointmentHandler) ConfirmPayment(c *gin.Context) {
	h.transition(c, h.payment.Execute)
}

// Cancel cancela e libera o horário. Com ?retract=true apaga o lançamento manual.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	if c.Query("retract") == "true" {
		barberID, barbershopID := middleware.Identity(c)
		id, ok := appointmentID(c)
		if !ok {
			return
		}

		if err := h.retract.Execute(c.Request.Context(), barbershopID, barberID, id); err != nil {
			respondError(c, err)
			return
		}

		httpresp.NoContent(c)
		return
	}

	h.transition(c, h.cancel.Execute)
}

func (h *AppointmentHandler) transition(c *gin.Context, exec transitionFunc) {
	barberID, barbershopID := middleware.Identity(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := exec(c.Request.Context(), barbershopID, barberID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
