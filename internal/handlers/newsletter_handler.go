package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type NewsletterService interface {
	CreateNewsletter(ctx context.Context, actor models.Actor, input models.NewsletterInput) (uint, error)
	ListNewsletters(ctx context.Context) ([]models.Newsletter, error)
	GetNewsletter(ctx context.Context, id uint) (models.Newsletter, error)
	SendNewsletter(ctx context.Context, actor models.Actor, id uint) (int, error)
	Subscribe(ctx context.Context, input models.SubscriberInput) (bool, error)
	Unsubscribe(ctx context.Context, token string) error
	ListSubscribers(ctx context.Context, actor models.Actor) ([]models.Subscriber, error)
	ImportSubscribers(ctx context.Context, actor models.Actor, inputs []models.SubscriberInput) (int, error)
}

type NewsletterHandler struct {
	newsletters NewsletterService
}

func NewNewsletterHandler(newsletters NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletters: newsletters}
}

type sectionRequest struct {
	Subtitle string `json:"subtitle"`
	Text     string `json:"text"`
	Image    string `json:"foto"`
}

type newsletterRequest struct {
	Title    string           `json:"title"`
	SendDate string           `json:"send_date"`
	Sections []sectionRequest `json:"sections"`
}

type newsletterResponse struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	SendDate  time.Time  `json:"send_date"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type sectionResponse struct {
	Subtitle string  `json:"subtitle"`
	Image    *string `json:"image"`
	Text     string  `json:"text"`
}

type newsletterDetailResponse struct {
	Newsletter newsletterResponse `json:"newsletter"`
	Sections   []sectionResponse  `json:"sections"`
}

type subscribeRequest struct {
	FirstName string `json:"vorname"`
	LastName  string `json:"nachname"`
	Email     string `json:"email"`
	OptIn     bool   `json:"newsletter_optin"`
}

type importRequest struct {
	Subscribers []subscribeRequest `json:"subscribers"`
}

type subscriberResponse struct {
	ID             uint       `json:"id"`
	FirstName      string     `json:"vorname"`
	LastName       string     `json:"nachname"`
	Email          string     `json:"email"`
	OptIn          bool       `json:"newsletter_optin"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	Status         string     `json:"status"`
}

func (r subscribeRequest) input() models.SubscriberInput {
	return models.SubscriberInput{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, OptIn: r.OptIn}
}

func toNewsletterResponse(n models.Newsletter) newsletterResponse {
	return newsletterResponse{ID: n.ID, Title: n.Title, SendDate: n.SendDate, SentAt: n.SentAt, CreatedAt: n.CreatedAt}
}

func (h *NewsletterHandler) CreateNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	input := models.NewsletterInput{
		Title:    req.Title,
		SendDate: req.SendDate,
		Sections: make([]models.SectionInput, 0, len(req.Sections)),
	}
	for _, s := range req.Sections {
		input.Sections = append(input.Sections, models.SectionInput{Subtitle: s.Subtitle, Text: s.Text, Image: s.Image})
	}

	id, err := h.newsletters.CreateNewsletter(c.Request.Context(), middleware.GetActor(c), input)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Newsletter saved successfully.",
		"newsletterId": id,
	})
}

func (h *NewsletterHandler) ListNewsletters(c *gin.Context) {
	newsletters, err := h.newsletters.ListNewsletters(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]newsletterResponse, 0, len(newsletters))
	for _, n := range newsletters {
		response = append(response, toNewsletterResponse(n))
	}
	c.JSON(http.StatusOK, response)
}

func (h *NewsletterHandler) GetNewsletter(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	newsletter, err := h.newsletters.GetNewsletter(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	sections := make([]sectionResponse, 0, len(newsletter.Sections))
	for _, s := range newsletter.Sections {
		sections = append(sections, sectionResponse{Subtitle: s.Subtitle, Image: helpers.ImageDataURI(s.Image), Text: s.Text})
	}
	c.JSON(http.StatusOK, newsletterDetailResponse{
		Newsletter: toNewsletterResponse(newsletter),
		Sections:   sections,
	})
}

func (h *NewsletterHandler) SendNewsletter(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	recipients, err := h.newsletters.SendNewsletter(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Newsletter sent to %d subscribers.", recipients),
		"recipients": recipients,
	})
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	reactivated, err := h.newsletters.Subscribe(c.Request.Context(), req.input())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	if reactivated {
		c.JSON(http.StatusOK, gin.H{"message": "Subscription reactivated."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed to the newsletter."})
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	if err := h.newsletters.Unsubscribe(c.Request.Context(), c.Query("token")); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed from the newsletter."})
}

func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	subscribers, err := h.newsletters.ListSubscribers(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]subscriberResponse, 0, len(subscribers))
	for _, s := range subscribers {
		response = append(response, subscriberResponse{
			ID:             s.ID,
			FirstName:      s.FirstName,
			LastName:       s.LastName,
			Email:          s.Email,
			OptIn:          s.OptIn,
			SubscribedAt:   s.SubscribedAt,
			UnsubscribedAt: s.UnsubscribedAt,
			Status:         s.Status(),
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *NewsletterHandler) ImportSubscribers(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	inputs := make([]models.SubscriberInput, 0, len(req.Subscribers))
	for _, s := range req.Subscribers {
		inputs = append(inputs, s.input())
	}

	imported, err := h.newsletters.ImportSubscribers(c.Request.Context(), middleware.GetActor(c), inputs)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("%d Abonnenten erfolgreich importiert.", imported),
		"imported": imported,
	})
}
