package api

import (
	"net/http"

	"github.com/example/shoe-store/internal/api/middleware"
	"github.com/example/shoe-store/internal/session"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	Identity     middleware.IdentityReader
	Sessions     *session.Manager
	Logger       *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	h := cfg.Handlers
	ah := cfg.AuthHandlers

	// Catalog
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /catalog/{$}", h.Catalog)
	mux.HandleFunc("GET /shoe/{id}/{$}", h.ShoeDetail)

	// Cart
	mux.HandleFunc("GET /cart/{$}", h.GetCart)
	mux.HandleFunc("POST /cart/add/{shoeID}/{$}", h.AddToCart)
	mux.HandleFunc("GET /cart/remove/{shoeID}/{size}/{$}", h.RemoveFromCart)
	mux.HandleFunc("POST /cart/remove/{shoeID}/{size}/{$}", h.RemoveFromCart)
	mux.HandleFunc("POST /cart/clear/{$}", h.ClearCart)

	// Accounts
	mux.HandleFunc("GET /register/{$}", ah.RegisterForm)
	mux.HandleFunc("POST /register/{$}", ah.Register)
	mux.HandleFunc("GET /login/{$}", ah.LoginForm)
	mux.HandleFunc("POST /login/{$}", ah.Login)
	mux.HandleFunc("GET /logout/{$}", ah.Logout)
	mux.HandleFunc("POST /logout/{$}", ah.Logout)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var handler http.Handler = mux
	handler = middleware.OptionalAuthMiddleware(cfg.Identity)(handler)
	handler = cfg.Sessions.Middleware(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recover(logger)(handler)
	return handler
}
