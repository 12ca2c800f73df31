package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type shopDirectory interface {
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	ListCatalog(ctx context.Context, barbershopID uint, category string) ([]models.BarberProduct, error)
}

type PublicHandler struct {
	shops        shopDirectory
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	shops shopDirectory,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
) *PublicHandler {
	setupValidator()

	return &PublicHandler{
		shops:        shops,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1,dive,gt=0"`
	Date        string `json:"date" binding:"required"` // ISO, no fuso da barbearia
	ClientName  string `json:"client_name" binding:"required,max=100"`
	ClientPhone string `json:"client_phone" binding:"omitempty,max=20"`
	Notes       string `json:"notes" binding:"omitempty,max=255"`
}

type PublicAvailabilityQuery struct {
	Date       string `form:"date" binding:"required"`
	ServiceIDs []uint `form:"service_id" binding:"required,min=1,dive,gt=0"`
	BarberID   uint   `form:"barber_id"`
}

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.shops.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return shop, true
}

////////////////////////////////////////////////////////
// PRODUCTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProducts(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	products, err := h.shops.ListCatalog(c.Request.Context(), shop.ID, category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"products":   products,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var q PublicAvailabilityQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarbershopID: shop.ID,
		BarberID:     q.BarberID,
		ServiceIDs:   q.ServiceIDs,
		Date:         q.Date,
		Customer:     true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ServiceIDs:   req.ServiceIDs,
		Start:        req.Date,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		Notes:        req.Notes,
		Origin:       domain.OriginCustomer,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, ap)
}
