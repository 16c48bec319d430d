/*
Package handler provides the HTTP handlers and routing setup for the
storefront session service.

This file defines the main Router, applying logging, CORS, and per-IP rate
limiting before delegating to the API and WebSocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"storefront/internal/pkg/auth/jwt"
	"storefront/internal/pkg/limiter"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/resp"
)

const (
	// Auth endpoints are credential-guessing targets; session starts are cheap
	// but create server-side state. Both get their own buckets.
	AuthRate   = 0.2
	AuthBurst  = 5
	StartRate  = 0.5
	StartBurst = 10
)

// Router sets up the application's HTTP routing table.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	startLimiter := limiter.NewIPRateLimiter(rate.Limit(StartRate), StartBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Storefront Session Service",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Method(http.MethodPost, "/session/start", startLimiter.Middleware(HandleStartSession(deps)))

		api.Route("/auth", func(auth chi.Router) {
			auth.Method(http.MethodPost, "/login", authLimiter.Middleware(HandleLogin(deps)))
			auth.Method(http.MethodPost, "/register", authLimiter.Middleware(HandleRegister(deps)))
			auth.Post("/logout", HandleLogout(deps))
		})

		api.Route("/user", func(user chi.Router) {
			user.Get("/profile", HandleGetProfile(deps))
			user.Post("/profile", HandleUpdateProfile(deps))
			user.Post("/avatar/presign", HandlePresignAvatarURL(deps))
		})

		api.Get("/regions", HandleListRegions(deps))
		api.Post("/region", HandleSelectRegion(deps))
		api.Post("/theme/toggle", HandleToggleTheme(deps))

		api.Route("/cart", func(cartRoutes chi.Router) {
			cartRoutes.Get("/", HandleGetCart(deps))
			cartRoutes.Delete("/", HandleClearCart(deps))
			cartRoutes.Post("/items", HandleAddCartItem(deps))
			cartRoutes.Post("/items/{itemID}", HandleUpdateCartItem(deps))
			cartRoutes.Delete("/items/{itemID}", HandleRemoveCartItem(deps))
			cartRoutes.Post("/checkout", HandleCheckoutCart(deps))
		})

		api.Get("/products", HandleListProducts(deps))
		api.Get("/products/{productID}", HandleGetProduct(deps))
		api.Get("/categories", HandleListCategories(deps))
	})

	r.Get("/ws/events", HandleEvents(wsUpgrader, deps))

	return r
}
