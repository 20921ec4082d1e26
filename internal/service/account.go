package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kenworld/edughana-shop/internal/domain"
	"github.com/Kenworld/edughana-shop/internal/repository"
	apperrors "github.com/Kenworld/edughana-shop/pkg/errors"
	"github.com/Kenworld/edughana-shop/pkg/pagination"
)

// UpdateProfileInput is the account details form.
type UpdateProfileInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Region    string `json:"region"`
}

// AccountService serves the signed-in customer dashboard: profile details
// and order history.
type AccountService struct {
	profiles repository.ProfileRepository
	orders   repository.OrderRepository
	logger   *slog.Logger
}

// NewAccountService creates an account service.
func NewAccountService(profiles repository.ProfileRepository, orders repository.OrderRepository, logger *slog.Logger) *AccountService {
	return &AccountService{
		profiles: profiles,
		orders:   orders,
		logger:   logger,
	}
}

// GetProfile returns the stored profile for userID.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in required")
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile stores the customer's details.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.Profile, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in required")
	}

	profile := &domain.Profile{
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		City:      input.City,
		Region:    input.Region,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile updated",
		slog.String("user_id", userID),
	)
	return profile, nil
}

// Orders returns the user's order history, newest first.
func (s *AccountService) Orders(ctx context.Context, userID string, params pagination.Params) (pagination.Result[domain.Order], error) {
	if userID == "" {
		return pagination.Result[domain.Order]{}, apperrors.Unauthorized("sign in required")
	}

	orders, total, err := s.orders.ListByUser(ctx, userID, params)
	if err != nil {
		return pagination.Result[domain.Order]{}, fmt.Errorf("list orders: %w", err)
	}

	return pagination.NewResult(orders, total, params), nil
}
