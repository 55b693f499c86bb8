// Package auth issues and verifies the bearer tokens that carry a caller's
// identity. Tokens are HS256 JWTs with the user id as subject plus role and
// organization claims; passwords are verified against bcrypt hashes.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gridpeak/voltra/internal/clock"
	"github.com/gridpeak/voltra/internal/config"
	"github.com/gridpeak/voltra/internal/identity"
	userdomain "github.com/gridpeak/voltra/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
)

type Service interface {
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	// ResolveIdentity verifies a bearer token and returns the identity it
	// carries. Any verification failure maps to ErrInvalidToken.
	ResolveIdentity(ctx context.Context, token string) (identity.Identity, error)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type claims struct {
	Role           string `json:"role"`
	OrganizationID string `json:"org_id"`
	jwt.RegisteredClaims
}

type Params struct {
	fx.In

	Log      *zap.Logger
	UserRepo userdomain.Repository
	Clock    clock.Clock
	Config   config.Config
}

type service struct {
	log      *zap.Logger
	userRepo userdomain.Repository
	clock    clock.Clock
	secret   []byte
	tokenTTL time.Duration
}

func NewService(p Params) Service {
	return &service{
		log:      p.Log.Named("auth.service"),
		userRepo: p.UserRepo,
		clock:    p.Clock,
		secret:   []byte(p.Config.AuthJWTSecret),
		tokenTTL: p.Config.AuthTokenTTL,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *service) ResolveIdentity(ctx context.Context, token string) (identity.Identity, error) {
	_ = ctx
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return identity.Identity{}, ErrInvalidToken
	}

	userID, err := snowflake.ParseString(parsed.Subject)
	if err != nil {
		return identity.Identity{}, ErrInvalidToken
	}
	orgID, err := snowflake.ParseString(parsed.OrganizationID)
	if err != nil {
		return identity.Identity{}, ErrInvalidToken
	}
	role := identity.Role(parsed.Role)
	if !role.Valid() {
		return identity.Identity{}, ErrInvalidToken
	}

	return identity.Identity{
		UserID:         userID,
		Role:           role,
		OrganizationID: orgID,
	}, nil
}

var Module = fx.Module("auth.service",
	fx.Provide(NewService),
)
