package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/example/shoe-store/internal/api/middleware"
	"github.com/example/shoe-store/internal/auth"
	"github.com/example/shoe-store/internal/domain/user"
	"github.com/example/shoe-store/internal/session"
	"go.uber.org/zap"
)

const (
	msgInvalidLogin = "Invalid username or password."
	msgLoggedOut    = "You have logged out."
)

var timeNow = func() time.Time { return time.Now().UTC() }

// Identity establishes and tears down the logged-in user of a browser.
type Identity interface {
	CreateSession(w http.ResponseWriter, r *http.Request, userID, username string) error
	DestroySession(w http.ResponseWriter, r *http.Request)
	CurrentUser(r *http.Request) (*auth.Claims, bool)
}

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	pages
	users    *user.Service
	identity Identity
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(users *user.Service, identity Identity, sessions *session.Manager, renderer Renderer, events EventPublisher, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		pages: pages{
			sessions: sessions,
			renderer: renderer,
			events:   events,
			logger:   logger,
		},
		users:    users,
		identity: identity,
	}
}

// RegisterForm shows an empty registration form
func (h *AuthHandlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	h.render(w, r, sess, http.StatusOK, "register.html", RegisterPage{Layout: h.layout(r, sess)})
}

// Register handles user registration
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	values := h.postForm(r)

	form := user.RegistrationForm{
		Username:  values.Get("username"),
		Email:     values.Get("email"),
		Password1: values.Get("password1"),
		Password2: values.Get("password2"),
	}

	newUser, err := h.users.Register(r.Context(), form)
	if err != nil {
		var formErrs user.FormErrors
		if errors.As(err, &formErrs) {
			h.render(w, r, sess, http.StatusOK, "register.html", RegisterPage{
				Layout:       h.layout(r, sess),
				FormUsername: form.Username,
				FormEmail:    form.Email,
				Errors:       formErrs,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.publish(r.Context(), newUser.ID, user.UserRegistered{
		UserID:       newUser.ID,
		Username:     newUser.Username,
		Email:        newUser.Email,
		RegisteredAt: newUser.CreatedAt,
	})

	sess.AddFlash(session.LevelSuccess,
		fmt.Sprintf("Account %s created! You can log in now.", newUser.Username))
	h.redirect(w, r, sess, "/login/")
}

func (h *AuthHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	h.render(w, r, sess, http.StatusOK, "login.html", LoginPage{Layout: h.layout(r, sess)})
}

// Login handles user login. Every rejection shows the same message.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()
	form := h.postForm(r)
	username := form.Get("username")

	u, err := h.users.Authenticate(ctx, username, form.Get("password"))
	if err != nil {
		if !errors.Is(err, user.ErrInvalidCredentials) {
			h.serverError(w, r, err)
			return
		}
		sess.AddFlash(session.LevelError, msgInvalidLogin)
		h.render(w, r, sess, http.StatusOK, "login.html", LoginPage{
			Layout:       h.layout(r, sess),
			FormUsername: username,
		})
		return
	}

	// Fresh session id on privilege change; the cart is kept.
	if err := h.sessions.Renew(ctx, sess); err != nil {
		h.serverError(w, r, fmt.Errorf("renew session: %w", err))
		return
	}
	if err := h.identity.CreateSession(w, r, u.ID, u.Username); err != nil {
		h.serverError(w, r, fmt.Errorf("create identity: %w", err))
		return
	}

	h.publish(ctx, u.ID, user.UserLoggedIn{
		UserID:    u.ID,
		Username:  u.Username,
		SessionID: sess.ID,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
		LoggedAt:  timeNow(),
	})

	sess.AddFlash(session.LevelInfo, fmt.Sprintf("You are logged in as %s.", u.Username))
	h.redirect(w, r, sess, "/")
}

// Logout handles user logout
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()

	oldSessionID := sess.ID
	if err := h.sessions.Flush(ctx, sess); err != nil {
		h.serverError(w, r, fmt.Errorf("flush session: %w", err))
		return
	}
	h.identity.DestroySession(w, r)

	if claims, ok := middleware.GetUserFromContext(ctx); ok {
		h.publish(ctx, claims.UserID, user.UserLoggedOut{
			UserID:    claims.UserID,
			SessionID: oldSessionID,
			LoggedAt:  timeNow(),
		})
	}

	sess.AddFlash(session.LevelInfo, msgLoggedOut)
	h.redirect(w, r, sess, "/")
}
