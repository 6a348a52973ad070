package services

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type BoardRepository interface {
	CreateBoardMember(ctx context.Context, member *models.BoardMember) error
	ListBoardMembers(ctx context.Context) ([]models.BoardMember, error)
	FindBoardMember(ctx context.Context, id int64, username string) (models.BoardMember, error)
	UpdateBoardMember(ctx context.Context, id uint, assignments map[string]any) (models.BoardMember, error)
}

type BoardService struct {
	repo BoardRepository
}

func NewBoardService(repo BoardRepository) *BoardService {
	return &BoardService{repo: repo}
}

// CreateBoardMember adds a profile. The optional photo is stored as PNG.
func (s *BoardService) CreateBoardMember(ctx context.Context, actor models.Actor, member models.BoardMember) (uint, error) {
	if err := actor.RequirePrivileged("create board profiles"); err != nil {
		return 0, err
	}
	if missing := member.MissingFields(); len(missing) > 0 {
		return 0, models.BadRequest("missing required fields: %s", strings.Join(missing, ", "))
	}
	member.Username = strings.TrimSpace(member.Username)

	if member.Photo != nil && *member.Photo != "" {
		photo, err := helpers.NormalizeImage(*member.Photo)
		if err != nil {
			return 0, err
		}
		member.Photo = &photo
	} else {
		member.Photo = nil
	}

	if err := s.repo.CreateBoardMember(ctx, &member); err != nil {
		return 0, err
	}
	return member.ID, nil
}

func (s *BoardService) ListBoardMembers(ctx context.Context) ([]models.BoardMember, error) {
	return s.repo.ListBoardMembers(ctx)
}

func (s *BoardService) ListBoardLogins(ctx context.Context, actor models.Actor) ([]models.BoardMember, error) {
	if err := actor.RequirePrivileged("view board logins"); err != nil {
		return nil, err
	}
	return s.repo.ListBoardMembers(ctx)
}

// GetMyProfile looks up the caller's board profile by token id or username.
// Callers without a profile get their token data only.
func (s *BoardService) GetMyProfile(ctx context.Context, actor models.Actor) (models.BoardProfile, error) {
	profile := models.BoardProfile{ActorID: actor.ID, Username: actor.Username}

	member, err := s.repo.FindBoardMember(ctx, actor.ID, actor.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return profile, nil
		}
		return profile, err
	}
	profile.Member = &member
	return profile, nil
}

// UpdateMyProfile applies a partial update to the caller's own profile.
func (s *BoardService) UpdateMyProfile(ctx context.Context, actor models.Actor, patch models.BoardMemberPatch) (models.BoardMember, error) {
	if patch.IsEmpty() {
		return models.BoardMember{}, models.BadRequest("no fields to update")
	}
	if field, blank := patch.BlankRequired(); blank {
		return models.BoardMember{}, models.BadRequest("%s must not be empty", field)
	}

	member, err := s.repo.FindBoardMember(ctx, actor.ID, actor.Username)
	if err != nil {
		return models.BoardMember{}, err
	}

	assignments := patch.Assignments()
	if username, ok := assignments["username"].(string); ok {
		assignments["username"] = strings.TrimSpace(username)
	}
	if photo, ok := assignments["photo"].(string); ok {
		if photo == "" {
			assignments["photo"] = nil
		} else {
			normalized, err := helpers.NormalizeImage(photo)
			if err != nil {
				return models.BoardMember{}, err
			}
			assignments["photo"] = normalized
		}
	}
	return s.repo.UpdateBoardMember(ctx, member.ID, assignments)
}
