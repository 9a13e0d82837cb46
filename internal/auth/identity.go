package auth

import (
	"net/http"
	"strings"
)

const AccessTokenCookie = "access_token"

// CookieIdentity keeps the logged-in user in a signed token cookie.
type CookieIdentity struct {
	jwt    *JWTService
	secure bool
}

func NewCookieIdentity(jwtService *JWTService, secure bool) *CookieIdentity {
	return &CookieIdentity{jwt: jwtService, secure: secure}
}

// CreateSession issues a token for the user and sets it as a cookie.
func (c *CookieIdentity) CreateSession(w http.ResponseWriter, r *http.Request, userID, username string) error {
	token, expiresAt, err := c.jwt.GenerateToken(userID, username)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// DestroySession clears the token cookie.
func (c *CookieIdentity) DestroySession(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser returns the claims of a valid token on the request.
func (c *CookieIdentity) CurrentUser(r *http.Request) (*Claims, bool) {
	token := ExtractToken(r)
	if token == "" {
		return nil, false
	}
	claims, err := c.jwt.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// ExtractToken extracts the token from cookie or Authorization header
func ExtractToken(r *http.Request) string {
	// Try cookie first (for browser)
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	// Fall back to Authorization header (for API clients)
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
