package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type profileReader interface {
	shopReader
	GetBarber(ctx context.Context, barbershopID uint, barberID uint) (*models.User, error)
}

type MeHandler struct {
	profiles profileReader
}

func NewMeHandler(profiles profileReader) *MeHandler {
	return &MeHandler{profiles: profiles}
}

// GetMe resolve o barbeiro do token e a barbearia dele.
func (h *MeHandler) GetMe(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)
	ctx := c.Request.Context()

	user, err := h.profiles.GetBarber(ctx, barbershopID, barberID)
	if err != nil {
		respondError(c, err)
		return
	}

	shop, err := h.profiles.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"phone":         user.Phone,
			"role":          user.Role,
			"barbershop_id": user.BarbershopID,
		},
		"barbershop": gin.H{
			"id":       shop.ID,
			"name":     shop.Name,
			"slug":     shop.Slug,
			"timezone": shop.Timezone,
		},
	})
}
