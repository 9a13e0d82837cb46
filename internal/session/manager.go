package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/example/shoe-store/internal/config"
	"github.com/example/shoe-store/internal/domain/cart"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Manager binds sessions to requests through a cookie.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     *zap.Logger
}

func NewManager(store Store, cfg config.SessionConfig, logger *zap.Logger) *Manager {
	return &Manager{
		store:      store,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.CookieSecure,
		logger:     logger,
	}
}

func newID() string {
	return uuid.NewString()
}

// Middleware loads the session named by the request cookie, or starts a
// new one, and stores it in the request context. Ids that are unknown to
// the store are never reused.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.load(r)
		if err != nil {
			m.logger.Error("load session", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
	})
}

func (m *Manager) load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return newSession(newID()), nil
	}

	sess, err := m.store.Load(r.Context(), cookie.Value)
	if errors.Is(err, ErrNotFound) {
		return newSession(newID()), nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Commit saves a modified session and refreshes the cookie. It must run
// before the response header is written.
func (m *Manager) Commit(w http.ResponseWriter, r *http.Request, sess *Session) error {
	if !sess.modified {
		return nil
	}
	if err := m.store.Save(r.Context(), sess, m.ttl); err != nil {
		return err
	}
	sess.modified = false
	sess.isNew = false

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		Secure:   m.secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew moves the session data to a fresh id, as done on login.
func (m *Manager) Renew(ctx context.Context, sess *Session) error {
	old := sess.ID
	sess.ID = newID()
	sess.modified = true
	if sess.isNew {
		return nil
	}
	return m.store.Delete(ctx, old)
}

// Flush discards all session data, cart included, and starts over under a
// fresh id, as done on logout.
func (m *Manager) Flush(ctx context.Context, sess *Session) error {
	old := sess.ID
	wasNew := sess.isNew

	sess.ID = newID()
	sess.Cart = cart.New()
	sess.Messages = nil
	sess.modified = true

	if wasNew {
		return nil
	}
	return m.store.Delete(ctx, old)
}

func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// FromContext returns the session stored by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*Session)
	return sess, ok
}
