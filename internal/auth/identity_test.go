package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCookieIdentity_CreateSession(t *testing.T) {
	identity := NewCookieIdentity(newTestJWTService(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/", nil)

	err := identity.CreateSession(rec, req, "user-1", "alice")
	require.NoError(t, err)

	cookie := findCookie(rec, AccessTokenCookie)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	claims, ok := identity.CurrentUser(next)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestCookieIdentity_DestroySession(t *testing.T) {
	identity := NewCookieIdentity(newTestJWTService(), true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout/", nil)

	identity.DestroySession(rec, req)

	cookie := findCookie(rec, AccessTokenCookie)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.True(t, cookie.Secure)
}

func TestCookieIdentity_CurrentUser(t *testing.T) {
	jwtService := newTestJWTService()
	identity := NewCookieIdentity(jwtService, false)
	token, _, err := jwtService.GenerateToken("user-2", "bob")
	require.NoError(t, err)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		wantOK  bool
	}{
		{"no token", func(r *http.Request) {}, false},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token}) }, true},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, true},
		{"garbage cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"}) }, false},
		{"basic auth header", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)

			claims, ok := identity.CurrentUser(req)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "bob", claims.Username)
			}
		})
	}
}
