package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type EventService interface {
	CreateEvent(ctx context.Context, actor models.Actor, input models.EventInput) (uint, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id uint) (models.Event, error)
	UpdateEvent(ctx context.Context, actor models.Actor, id uint, patch models.EventPatch) error
	DeleteEvent(ctx context.Context, actor models.Actor, id uint) error
	NextEventID(ctx context.Context) (int64, error)
}

type EventHandler struct {
	events EventService
}

func NewEventHandler(events EventService) *EventHandler {
	return &EventHandler{events: events}
}

type priceRequest struct {
	Description *string  `json:"preisbeschreibung"`
	Cost        *float64 `json:"kosten"`
}

type priceResponse struct {
	ID          uint    `json:"id"`
	Description *string `json:"preisbeschreibung"`
	Cost        float64 `json:"kosten"`
}

type createEventRequest struct {
	Title            string         `json:"titel"`
	Description      string         `json:"beschreibung"`
	Location         string         `json:"ort"`
	StartTime        string         `json:"von"`
	EndTime          string         `json:"bis"`
	Image            string         `json:"bild"`
	ImageCaption     *string        `json:"bildtitel"`
	OpenToAll        bool           `json:"alle"`
	HasSupporterTier bool           `json:"supporter"`
	Prices           []priceRequest `json:"preise"`
}

// updateEventRequest distinguishes absent keys from sent ones. A null or
// missing preise or felder leaves the tiers or the form untouched.
type updateEventRequest struct {
	Title            null.String         `json:"titel"`
	Description      null.String         `json:"beschreibung"`
	Location         null.String         `json:"ort"`
	StartTime        null.String         `json:"von"`
	EndTime          null.String         `json:"bis"`
	Status           null.String         `json:"status"`
	Image            null.String         `json:"bild"`
	ImageCaption     null.String         `json:"bildtitel"`
	OpenToAll        null.Bool           `json:"alle"`
	HasSupporterTier null.Bool           `json:"supporter"`
	Prices           *[]priceRequest     `json:"preise"`
	FormFields       *[]formFieldRequest `json:"felder"`
}

type eventResponse struct {
	ID               uint            `json:"id"`
	Title            string          `json:"titel"`
	Description      string          `json:"beschreibung"`
	Location         string          `json:"ort"`
	StartTime        time.Time       `json:"von"`
	EndTime          time.Time       `json:"bis"`
	Status           string          `json:"status"`
	Image            *string         `json:"bild"`
	ImageCaption     *string         `json:"bildtitel"`
	OpenToAll        bool            `json:"alle"`
	HasSupporterTier bool            `json:"supporter"`
	Prices           []priceResponse `json:"preise"`
}

func toPriceInputs(prices []priceRequest) []models.PriceInput {
	inputs := make([]models.PriceInput, 0, len(prices))
	for _, p := range prices {
		inputs = append(inputs, models.PriceInput{Description: p.Description, Cost: p.Cost})
	}
	return inputs
}

func toEventResponse(event models.Event) eventResponse {
	prices := make([]priceResponse, 0, len(event.Prices))
	for _, p := range event.Prices {
		prices = append(prices, priceResponse{ID: p.ID, Description: p.Description, Cost: p.Cost})
	}
	return eventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Description:      event.Description,
		Location:         event.Location,
		StartTime:        event.StartTime,
		EndTime:          event.EndTime,
		Status:           event.Status,
		Image:            helpers.ImageDataURI(event.Image),
		ImageCaption:     event.ImageCaption,
		OpenToAll:        event.OpenToAll,
		HasSupporterTier: event.HasSupporterTier,
		Prices:           prices,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	input := models.EventInput{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Image:            req.Image,
		ImageCaption:     req.ImageCaption,
		OpenToAll:        req.OpenToAll,
		HasSupporterTier: req.HasSupporterTier,
		Prices:           toPriceInputs(req.Prices),
	}

	if req.StartTime != "" {
		start, err := helpers.ParseEventTime("von", req.StartTime)
		if err != nil {
			helpers.RespondWithServiceError(c, err)
			return
		}
		input.StartTime = start
	}
	if req.EndTime != "" {
		end, err := helpers.ParseEventTime("bis", req.EndTime)
		if err != nil {
			helpers.RespondWithServiceError(c, err)
			return
		}
		input.EndTime = end
	}

	id, err := h.events.CreateEvent(c.Request.Context(), middleware.GetActor(c), input)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully.",
		"eventId": id,
	})
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]eventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, toEventResponse(event))
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	patch := models.EventPatch{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Status:           req.Status,
		Image:            req.Image,
		ImageCaption:     req.ImageCaption,
		OpenToAll:        req.OpenToAll,
		HasSupporterTier: req.HasSupporterTier,
	}

	if req.StartTime.Valid {
		start, err := helpers.ParseEventTime("von", req.StartTime.String)
		if err != nil {
			helpers.RespondWithServiceError(c, err)
			return
		}
		patch.StartTime = null.TimeFrom(start)
	}
	if req.EndTime.Valid {
		end, err := helpers.ParseEventTime("bis", req.EndTime.String)
		if err != nil {
			helpers.RespondWithServiceError(c, err)
			return
		}
		patch.EndTime = null.TimeFrom(end)
	}
	if req.Prices != nil {
		patch.Prices = toPriceInputs(*req.Prices)
	}
	if req.FormFields != nil {
		patch.FormFields = toFormFieldInputs(*req.FormFields)
	}

	if err := h.events.UpdateEvent(c.Request.Context(), middleware.GetActor(c), id, patch); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully."})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	if err := h.events.DeleteEvent(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}

func (h *EventHandler) NextEventID(c *gin.Context) {
	next, err := h.events.NextEventID(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nextId": next})
}
