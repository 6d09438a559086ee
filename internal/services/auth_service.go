// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type AuthService struct {
	accounts repository.AccountStore
	jwt      *utils.JWTManager
	now      func() time.Time
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(accounts repository.AccountStore, jwt *utils.JWTManager) *AuthService {
	return &AuthService{
		accounts: accounts,
		jwt:      jwt,
		now:      time.Now,
	}
}

// Register creates a customer account. Sellers register through
// SellerService.Register.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidationFailure(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  models.RoleCustomer,
		Phone: req.Phone,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	if err := s.accounts.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login checks credentials. A seller can log in only once its vendor profile
// has been approved.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidationFailure(req); err != nil {
		return nil, err
	}

	user, err := s.accounts.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if user.Role == models.RoleSeller {
		seller, err := s.accounts.FindSellerByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if seller == nil || !seller.IsApproved {
			return nil, apperrors.Forbidden("seller account is pending approval")
		}
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.accounts.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.accounts.FindUserByID(ctx, userID)
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.accounts.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return apperrors.InvalidInput("user with this email already exists")
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := s.jwt.Generate(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate access token: %w", err))
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwt.TTL().Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
