// AngelaMos | 2026
// session.go

package auth

import (
	"net/http"
	"time"

	"github.com/carterperez-dev/templates/pos-backend/internal/config"
)

// SessionCookie binds a session token to the browser.
type SessionCookie struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

func NewSessionCookie(cfg config.SessionConfig, lifetime time.Duration) *SessionCookie {
	return &SessionCookie{
		Name:     cfg.CookieName,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSiteMode(),
		MaxAge:   lifetime,
	}
}

func (c *SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
		MaxAge:   int(c.MaxAge / time.Second),
		Expires:  time.Now().Add(c.MaxAge),
	})
}

// Clear expires the cookie immediately.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// Read returns the token carried by the request, or "" when there is none.
func (c *SessionCookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
