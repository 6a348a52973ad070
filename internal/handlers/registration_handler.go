package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type RegistrationService interface {
	Register(ctx context.Context, eventID uint, data map[string]any) (uint, error)
	AddManualRegistration(ctx context.Context, actor models.Actor, eventID uint, data map[string]any) (uint, error)
	ListRegistrations(ctx context.Context, actor models.Actor, eventID uint) (models.RegistrationListing, error)
}

type RegistrationHandler struct {
	registrations RegistrationService
}

func NewRegistrationHandler(registrations RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

type registrationRequest struct {
	Daten any `json:"daten"`
}

// bindRegistration decodes numbers in daten as json.Number so large integers
// keep every digit.
func bindRegistration(c *gin.Context) (registrationRequest, error) {
	var req registrationRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		return req, errors.Wrap(err, "decoding registration body")
	}
	return req, nil
}

// data returns nil unless daten is a JSON object.
func (r registrationRequest) data() map[string]any {
	data, _ := r.Daten.(map[string]any)
	return data
}

type registrationResponse struct {
	ID        uint           `json:"id"`
	Daten     map[string]any `json:"daten"`
	CreatedAt time.Time      `json:"created_at"`
}

type registrationListResponse struct {
	Fields        []string               `json:"fields"`
	Registrations []registrationResponse `json:"registrations"`
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	eventID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	req, err := bindRegistration(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id, err := h.registrations.Register(c.Request.Context(), eventID, req.data())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Registration saved successfully.",
		"registrationId": id,
	})
}

func (h *RegistrationHandler) AddManualRegistration(c *gin.Context) {
	eventID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	req, err := bindRegistration(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id, err := h.registrations.AddManualRegistration(c.Request.Context(), middleware.GetActor(c), eventID, req.data())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Registration added successfully.",
		"registrationId": id,
	})
}

func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	eventID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	listing, err := h.registrations.ListRegistrations(c.Request.Context(), middleware.GetActor(c), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := registrationListResponse{
		Fields:        listing.Fields,
		Registrations: make([]registrationResponse, 0, len(listing.Registrations)),
	}
	if response.Fields == nil {
		response.Fields = []string{}
	}
	for _, r := range listing.Registrations {
		response.Registrations = append(response.Registrations, registrationResponse{
			ID:        r.ID,
			Daten:     r.Data,
			CreatedAt: r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
