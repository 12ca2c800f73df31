package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type BarbershopHandler struct {
	db *gorm.DB
}

func NewBarbershopHandler(db *gorm.DB) *BarbershopHandler {
	setupValidator()
	return &BarbershopHandler{db: db}
}

type UpdateBarbershopConfigRequest struct {
	Name                   *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone                  *string `json:"phone" binding:"omitempty,max=20"`
	Address                *string `json:"address" binding:"omitempty,max=255"`
	Timezone               *string `json:"timezone"`
	MinAdvanceMinutes      *int    `json:"min_advance_minutes" binding:"omitempty,min=0,max=10080"`
	SlotGranularityMinutes *int    `json:"slot_granularity_minutes" binding:"omitempty,min=5,max=120"`
}

func (h *BarbershopHandler) load(c *gin.Context) (*models.Barbershop, bool) {
	_, barbershopID := middleware.Identity(c)

	var shop models.Barbershop
	if err := h.db.WithContext(c.Request.Context()).First(&shop, barbershopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		respondError(c, httperr.ErrStorage("get_barbershop", err))
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarbershopConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if !timezone.IsValid(tz) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = tz
	}
	if req.MinAdvanceMinutes != nil {
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.SlotGranularityMinutes != nil {
		shop.SlotGranularityMinutes = *req.SlotGranularityMinutes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		respondError(c, httperr.ErrStorage("update_barbershop", err))
		return
	}

	c.JSON(http.StatusOK, shop)
}
