package usecase

import (
	"context"
	"fmt"
	"time"

	"event-tickets/internal/data/entity"
	"event-tickets/internal/data/repository"
	"event-tickets/internal/dto/request"
	"event-tickets/internal/dto/response"
	"event-tickets/pkg/errs"
	"event-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService guards the admin dashboard. Buyers never authenticate.
type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*response.SessionResponse, error)
	// EnsureAdmin bootstraps the configured admin account on first run
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if fieldErrs := utils.ValidateStruct(req); len(fieldErrs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", fieldErrs))
		return nil, errs.NewValidationError(fieldErrs)
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Wrong email and wrong password must look the same
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, errs.ErrInvalidCredentials
	}

	// 4. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, errs.ErrInvalidCredentials
	}

	// 5. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, errs.ErrAccountDeactivated
	}

	// 6. Create session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("Admin logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// Token is a uuid; reject junk before hitting the database
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format on logout", zap.Error(err))
		return errs.NewValidationError(map[string]string{"Token": "Must be a valid UUID"})
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("Admin logged out")
	return nil
}

func (s *authService) Session(ctx context.Context, token string) (*response.SessionResponse, error) {
	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}
	if user == nil {
		return nil, errs.ErrInvalidCredentials
	}

	resp := response.SessionToResponse(user, session)
	return &resp, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.log.Warn("Admin bootstrap skipped: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	count, err := s.repo.User.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	admin := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin account bootstrapped", zap.String("email", email))
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	expiry := time.Duration(s.config.Admin.SessionExpiryHrs) * time.Hour

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(expiry),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
