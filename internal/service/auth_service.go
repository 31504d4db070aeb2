package service

import (
	"context"
	"errors"
	"time"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// DTOs for request validation
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// AccountResponse is the public-safe projection of an account (no hash).
type AccountResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	IsApproved bool   `json:"isApproved"`
	CreatedAt  string `json:"createdAt"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

// AuthService issues sessions for approved accounts and handles
// registration submissions and password rotation.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetAccountByID(ctx context.Context, id string) (*AccountResponse, error)
	ChangePassword(ctx context.Context, accountID string, req ChangePasswordRequest) error
}

type authService struct {
	accounts repository.AccountRepository
	requests repository.AccessRequestRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(accounts repository.AccountRepository, requests repository.AccessRequestRepository, secret []byte, tokenTTL time.Duration) AuthService {
	return &authService{
		accounts: accounts,
		requests: requests,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func mapAccountToResponse(a *model.Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID.String(),
		Username:   a.Username,
		Email:      a.Email,
		FullName:   a.FullName,
		Role:       a.Role,
		IsApproved: a.IsApproved,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

// Register stores a pending access request. It does not create a usable
// account; an admin has to approve the request first.
func (s *authService) Register(ctx context.Context, req RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.FullName == "" || req.Password == "" {
		return apperr.Validation("all fields are required")
	}
	if len(req.Password) < minPasswordLength {
		return apperr.Validation("password must be at least %d characters", minPasswordLength)
	}

	// Uniqueness is checked jointly across accounts and requests of any
	// status, matching the registration invariant.
	taken, err := s.accounts.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return apperr.Internal(err)
	}
	if !taken {
		taken, err = s.requests.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
		if err != nil {
			return apperr.Internal(err)
		}
	}
	if taken {
		return apperr.Conflict("username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	request := &model.AccessRequest{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Status:       model.RequestPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Login authenticates an approved account and issues a 24h bearer token.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("username and password are required")
	}

	account, err := s.accounts.GetApprovedByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("invalid credentials or account not approved")
		}
		return nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Auth("invalid credentials or account not approved")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": account.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	resp := &LoginResponse{
		Token: signed,
		User:  mapAccountToResponse(account),
	}
	return resp, nil
}

func (s *authService) GetAccountByID(ctx context.Context, id string) (*AccountResponse, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal(err)
	}
	resp := mapAccountToResponse(account)
	return &resp, nil
}

// ChangePassword rotates the caller's own password. Previously issued
// tokens stay valid until their natural expiry.
func (s *authService) ChangePassword(ctx context.Context, accountID string, req ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperr.Validation("current password and new password are required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperr.Validation("new password must be at least %d characters", minPasswordLength)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("account not found")
		}
		return apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperr.Validation("current password is incorrect")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.NewPassword)) == nil {
		return apperr.Validation("new password must be different from current password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}
	account.PasswordHash = string(hash)
	if err := s.accounts.Update(ctx, account); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
