package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	orgdomain "github.com/gridpeak/voltra/internal/organization/domain"
	"github.com/gridpeak/voltra/internal/user/domain"
	"github.com/gridpeak/voltra/pkg/db"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo   domain.Repository
	orgSvc orgdomain.Service
	genID  *snowflake.Node
}

func NewService(repo domain.Repository, orgSvc orgdomain.Service, genID *snowflake.Node) domain.Service {
	return &service{repo: repo, orgSvc: orgSvc, genID: genID}
}

func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidPassword
	}
	if !req.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	// Referenced organization must exist; the not-found error propagates
	// unchanged so the caller sees the usual 404.
	if _, err := s.orgSvc.ResolveByID(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:             s.genID.Generate(),
		Username:       username,
		PasswordHash:   string(hash),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Role:           req.Role,
		OrganizationID: req.OrganizationID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	return toResponse(user), nil
}

func (s *service) List(ctx context.Context) ([]domain.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, *toResponse(user))
	}
	return resp, nil
}

func toResponse(user domain.User) *domain.UserResponse {
	return &domain.UserResponse{
		ID:             user.ID.String(),
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID.String(),
	}
}
