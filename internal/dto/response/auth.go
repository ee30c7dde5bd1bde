package response

import (
	"time"

	"event-tickets/internal/data/entity"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type SessionResponse struct {
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Helper converters

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	return AuthResponse{
		UserID:    user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}
}

func SessionToResponse(user *entity.User, session *entity.Session) SessionResponse {
	return SessionResponse{
		UserID:    user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: session.ExpiresAt,
	}
}
