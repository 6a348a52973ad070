package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type FormService interface {
	SetFormSchema(ctx context.Context, actor models.Actor, eventID uint, inputs []models.FormFieldInput) error
	GetFormSchema(ctx context.Context, eventID uint) ([]models.FormField, error)
}

type FormHandler struct {
	forms FormService
}

func NewFormHandler(forms FormService) *FormHandler {
	return &FormHandler{forms: forms}
}

type formFieldRequest struct {
	Name     string   `json:"feldname"`
	Type     string   `json:"typ"`
	Required bool     `json:"pflicht"`
	Options  []string `json:"optionen"`
}

// setFormRequest accepts the field list under felder or fields.
type setFormRequest struct {
	Felder *[]formFieldRequest `json:"felder"`
	Fields *[]formFieldRequest `json:"fields"`
}

type formFieldResponse struct {
	ID       uint     `json:"id"`
	Name     string   `json:"feldname"`
	Type     string   `json:"typ"`
	Required bool     `json:"pflicht"`
	Options  []string `json:"optionen"`
}

func toFormFieldInputs(fields []formFieldRequest) []models.FormFieldInput {
	inputs := make([]models.FormFieldInput, 0, len(fields))
	for _, f := range fields {
		inputs = append(inputs, models.FormFieldInput{
			Name:     f.Name,
			Type:     f.Type,
			Required: f.Required,
			Options:  f.Options,
		})
	}
	return inputs
}

func (h *FormHandler) SetFormSchema(c *gin.Context) {
	eventID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	var req setFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	fields := req.Felder
	if fields == nil {
		fields = req.Fields
	}

	var inputs []models.FormFieldInput
	if fields != nil {
		inputs = toFormFieldInputs(*fields)
	}

	if err := h.forms.SetFormSchema(c.Request.Context(), middleware.GetActor(c), eventID, inputs); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Form saved successfully. An event has exactly one form."})
}

func (h *FormHandler) GetFormSchema(c *gin.Context) {
	eventID, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	fields, err := h.forms.GetFormSchema(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]formFieldResponse, 0, len(fields))
	for _, field := range fields {
		response = append(response, formFieldResponse{
			ID:       field.ID,
			Name:     field.Name,
			Type:     field.Type,
			Required: field.Required,
			Options:  field.Choices(),
		})
	}
	c.JSON(http.StatusOK, response)
}
