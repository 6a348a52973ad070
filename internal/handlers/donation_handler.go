package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type DonationService interface {
	GetDonation(ctx context.Context) (models.Donation, error)
	CreateDonation(ctx context.Context, actor models.Actor, donation models.Donation) (models.Donation, error)
	UpdateDonation(ctx context.Context, actor models.Actor, patch models.DonationPatch) (models.Donation, error)
	DeleteDonation(ctx context.Context, actor models.Actor) error
}

type DonationHandler struct {
	donations DonationService
}

func NewDonationHandler(donations DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

type donationRequest struct {
	IBAN      string  `json:"iban"`
	Bank      string  `json:"bank"`
	Clearing  *string `json:"clearing"`
	Swift     *string `json:"swift"`
	Postcheck *string `json:"postcheck"`
	Note      *string `json:"hinweis"`
}

type donationPatchRequest struct {
	IBAN      null.String         `json:"iban"`
	Bank      null.String         `json:"bank"`
	Clearing  models.Null[string] `json:"clearing"`
	Swift     models.Null[string] `json:"swift"`
	Postcheck models.Null[string] `json:"postcheck"`
	Note      models.Null[string] `json:"hinweis"`
}

type donationResponse struct {
	ID        uint    `json:"id"`
	IBAN      string  `json:"iban"`
	Bank      string  `json:"bank"`
	Clearing  *string `json:"clearing"`
	Swift     *string `json:"swift"`
	Postcheck *string `json:"postcheck"`
	Note      *string `json:"hinweis"`
}

func toDonationResponse(d models.Donation) donationResponse {
	return donationResponse{
		ID:        d.ID,
		IBAN:      d.IBAN,
		Bank:      d.Bank,
		Clearing:  d.Clearing,
		Swift:     d.Swift,
		Postcheck: d.Postcheck,
		Note:      d.Note,
	}
}

func (h *DonationHandler) GetDonation(c *gin.Context) {
	donation, err := h.donations.GetDonation(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDonationResponse(donation))
}

func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	donation, err := h.donations.CreateDonation(c.Request.Context(), middleware.GetActor(c), models.Donation{
		IBAN:      req.IBAN,
		Bank:      req.Bank,
		Clearing:  req.Clearing,
		Swift:     req.Swift,
		Postcheck: req.Postcheck,
		Note:      req.Note,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDonationResponse(donation))
}

func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	var req donationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	donation, err := h.donations.UpdateDonation(c.Request.Context(), middleware.GetActor(c), models.DonationPatch{
		IBAN:      req.IBAN,
		Bank:      req.Bank,
		Clearing:  req.Clearing,
		Swift:     req.Swift,
		Postcheck: req.Postcheck,
		Note:      req.Note,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDonationResponse(donation))
}

func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	if err := h.donations.DeleteDonation(c.Request.Context(), middleware.GetActor(c)); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Donation details deleted."})
}
