package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type AnfrageService interface {
	CreateAnfrage(ctx context.Context, anfrage models.Anfrage) (uint, error)
	ListAnfragen(ctx context.Context, actor models.Actor) ([]models.Anfrage, error)
	GetAnfrage(ctx context.Context, actor models.Actor, id uint) (models.Anfrage, error)
}

type AnfrageHandler struct {
	anfragen AnfrageService
}

func NewAnfrageHandler(anfragen AnfrageService) *AnfrageHandler {
	return &AnfrageHandler{anfragen: anfragen}
}

type anfrageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"nachricht" binding:"required"`
}

type anfrageResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"nachricht"`
	CreatedAt time.Time `json:"erstellt_am"`
}

func toAnfrageResponse(a models.Anfrage) anfrageResponse {
	return anfrageResponse{ID: a.ID, Name: a.Name, Email: a.Email, Message: a.Message, CreatedAt: a.CreatedAt}
}

func (h *AnfrageHandler) CreateAnfrage(c *gin.Context) {
	var req anfrageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name, a valid email and a message are required.")
		return
	}

	id, err := h.anfragen.CreateAnfrage(c.Request.Context(), models.Anfrage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Inquiry saved successfully.",
		"anfrageId": id,
	})
}

func (h *AnfrageHandler) ListAnfragen(c *gin.Context) {
	anfragen, err := h.anfragen.ListAnfragen(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]anfrageResponse, 0, len(anfragen))
	for _, a := range anfragen {
		response = append(response, toAnfrageResponse(a))
	}
	c.JSON(http.StatusOK, response)
}

func (h *AnfrageHandler) GetAnfrage(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	anfrage, err := h.anfragen.GetAnfrage(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAnfrageResponse(anfrage))
}
