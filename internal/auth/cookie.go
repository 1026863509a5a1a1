package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the client-side credential carrying the session
// token.
const SessionCookieName = "nicu_session"

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Secure bool
}

// SetSessionCookie issues the session cookie. HttpOnly and SameSite=Lax
// keep the token away from scripts and cross-site requests; lifetime
// tracks the token expiry exactly.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
