package http

import (
	"net/http"
	"time"

	"github.com/spazigo/spazigo/internal/auth/domain"
	"github.com/spazigo/spazigo/pkg/httpx"
)

// userPayload is the wire shape for a user. The password hash never leaves
// the service, so it simply has no field here.
type userPayload struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	Provider    string     `json:"provider"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newUserPayload(u domain.User) userPayload {
	return userPayload{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		Status:      string(u.Status),
		Provider:    string(u.Provider),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// sessionPayload exposes session metadata without the token hash.
type sessionPayload struct {
	ID        string     `json:"id"`
	UserAgent string     `json:"userAgent,omitempty"`
	Platform  string     `json:"platform,omitempty"`
	IP        string     `json:"ip,omitempty"`
	Revoked   bool       `json:"revoked"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

func newSessionPayload(s domain.Session) sessionPayload {
	return sessionPayload{
		ID:        s.ID,
		UserAgent: s.UserAgent,
		Platform:  s.Platform,
		IP:        s.IP,
		Revoked:   s.Revoked,
		RevokedAt: s.RevokedAt,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}

// authPayload is returned by register, login and refresh.
type authPayload struct {
	User   userPayload      `json:"user"`
	Tokens domain.TokenPair `json:"tokens"`
}

// requestMeta captures the device metadata recorded with each session.
func requestMeta(r *http.Request) domain.RequestMeta {
	return domain.RequestMeta{
		UserAgent: r.UserAgent(),
		Platform:  r.Header.Get("X-Platform"),
		IP:        httpx.ClientIP(r),
	}
}
