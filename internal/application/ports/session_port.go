package ports

import (
	"context"
	"time"
)

// Session registro revocable asociado al jti de un token.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// SessionStore guarda sesiones activas. Un token solo es válido mientras su
// sesión exista; Logout la revoca.
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Exists(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string) error
}
