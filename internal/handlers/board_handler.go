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

type BoardService interface {
	CreateBoardMember(ctx context.Context, actor models.Actor, member models.BoardMember) (uint, error)
	ListBoardMembers(ctx context.Context) ([]models.BoardMember, error)
	ListBoardLogins(ctx context.Context, actor models.Actor) ([]models.BoardMember, error)
	GetMyProfile(ctx context.Context, actor models.Actor) (models.BoardProfile, error)
	UpdateMyProfile(ctx context.Context, actor models.Actor, patch models.BoardMemberPatch) (models.BoardMember, error)
}

type BoardHandler struct {
	board BoardService
}

func NewBoardHandler(board BoardService) *BoardHandler {
	return &BoardHandler{board: board}
}

type boardMemberRequest struct {
	Gender      string  `json:"geschlecht"`
	FirstName   string  `json:"vorname"`
	LastName    string  `json:"nachname"`
	Address     string  `json:"adresse"`
	PostalCode  string  `json:"plz"`
	City        string  `json:"ort"`
	Username    string  `json:"benutzername"`
	Phone       string  `json:"telefon"`
	Email       string  `json:"email"`
	Role        string  `json:"rolle"`
	Description *string `json:"beschreibung"`
	Photo       *string `json:"foto"`
}

type boardMemberPatchRequest struct {
	Gender      null.String         `json:"geschlecht"`
	FirstName   null.String         `json:"vorname"`
	LastName    null.String         `json:"nachname"`
	Address     null.String         `json:"adresse"`
	PostalCode  null.String         `json:"plz"`
	City        null.String         `json:"ort"`
	Username    null.String         `json:"benutzername"`
	Phone       null.String         `json:"telefon"`
	Email       null.String         `json:"email"`
	Role        null.String         `json:"rolle"`
	Description models.Null[string] `json:"beschreibung"`
	Photo       models.Null[string] `json:"foto"`
}

type boardMemberPublicResponse struct {
	FirstName   string  `json:"vorname"`
	LastName    string  `json:"nachname"`
	Role        string  `json:"rolle"`
	Description *string `json:"beschreibung"`
	Photo       *string `json:"foto"`
}

type boardPhotoResponse struct {
	FirstName string  `json:"vorname"`
	LastName  string  `json:"nachname"`
	Photo     *string `json:"foto"`
}

type boardLoginResponse struct {
	Username  string `json:"benutzername"`
	FirstName string `json:"vorname"`
	LastName  string `json:"nachname"`
}

type boardProfileResponse struct {
	ID          uint    `json:"id"`
	Gender      string  `json:"geschlecht"`
	FirstName   string  `json:"vorname"`
	LastName    string  `json:"nachname"`
	Address     string  `json:"adresse"`
	PostalCode  string  `json:"plz"`
	City        string  `json:"ort"`
	Username    string  `json:"benutzername"`
	Phone       string  `json:"telefon"`
	Email       string  `json:"email"`
	Role        string  `json:"rolle"`
	Description *string `json:"beschreibung"`
	Photo       *string `json:"foto"`
	OnBoard     bool    `json:"istImVorstand"`
}

func toBoardProfileResponse(m models.BoardMember) boardProfileResponse {
	return boardProfileResponse{
		ID:          m.ID,
		Gender:      m.Gender,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Address:     m.Address,
		PostalCode:  m.PostalCode,
		City:        m.City,
		Username:    m.Username,
		Phone:       m.Phone,
		Email:       m.Email,
		Role:        m.Role,
		Description: m.Description,
		Photo:       helpers.ImageDataURI(m.Photo),
		OnBoard:     true,
	}
}

func (h *BoardHandler) CreateBoardMember(c *gin.Context) {
	var req boardMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id, err := h.board.CreateBoardMember(c.Request.Context(), middleware.GetActor(c), models.BoardMember{
		Gender:      req.Gender,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		PostalCode:  req.PostalCode,
		City:        req.City,
		Username:    req.Username,
		Phone:       req.Phone,
		Email:       req.Email,
		Role:        req.Role,
		Description: req.Description,
		Photo:       req.Photo,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Board member created successfully.",
		"id":      id,
	})
}

func (h *BoardHandler) ListBoardMembers(c *gin.Context) {
	members, err := h.board.ListBoardMembers(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]boardMemberPublicResponse, 0, len(members))
	for _, m := range members {
		response = append(response, boardMemberPublicResponse{
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			Role:        m.Role,
			Description: m.Description,
			Photo:       helpers.ImageDataURI(m.Photo),
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) ListBoardPhotos(c *gin.Context) {
	members, err := h.board.ListBoardMembers(c.Request.Context())
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]boardPhotoResponse, 0, len(members))
	for _, m := range members {
		response = append(response, boardPhotoResponse{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Photo:     helpers.ImageDataURI(m.Photo),
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) ListBoardLogins(c *gin.Context) {
	members, err := h.board.ListBoardLogins(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	response := make([]boardLoginResponse, 0, len(members))
	for _, m := range members {
		response = append(response, boardLoginResponse{Username: m.Username, FirstName: m.FirstName, LastName: m.LastName})
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.board.GetMyProfile(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	if profile.Member == nil {
		c.JSON(http.StatusOK, gin.H{
			"id":            profile.ActorID,
			"benutzername":  profile.Username,
			"istImVorstand": false,
			"message":       "No board profile exists for this user.",
		})
		return
	}
	c.JSON(http.StatusOK, toBoardProfileResponse(*profile.Member))
}

func (h *BoardHandler) UpdateMyProfile(c *gin.Context) {
	var req boardMemberPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	member, err := h.board.UpdateMyProfile(c.Request.Context(), middleware.GetActor(c), models.BoardMemberPatch{
		Gender:      req.Gender,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		PostalCode:  req.PostalCode,
		City:        req.City,
		Username:    req.Username,
		Phone:       req.Phone,
		Email:       req.Email,
		Role:        req.Role,
		Description: req.Description,
		Photo:       req.Photo,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardProfileResponse(member))
}
