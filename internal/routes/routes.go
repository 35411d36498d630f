package routes

import (
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"VOYAGEAI_BACK-END/internal/config"
	"VOYAGEAI_BACK-END/internal/handlers"
	"VOYAGEAI_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
	healthHandler *handlers.HealthHandler,
	tripsHandler *handlers.TripsHandler,
	itinerariesHandler *handlers.ItinerariesHandler,
) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", authHandler.Register)
	http.HandleFunc("/api/auth/login", authHandler.Login)
	http.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(authHandler.GetProfile, jwtCfg))
	http.HandleFunc("/api/auth/google/login", googleAuthHandler.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", googleAuthHandler.GoogleCallback)

	// Trip routes; subpaths ending in /itinerary belong to generation
	http.HandleFunc("/api/trips", middleware.AuthMiddleware(tripsHandler.Trips, jwtCfg))
	http.HandleFunc("/api/trips/", middleware.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/itinerary/regenerate"):
			itinerariesHandler.RegenerateItinerary(w, r)
		case strings.HasSuffix(r.URL.Path, "/itinerary"):
			itinerariesHandler.GenerateItinerary(w, r)
		default:
			tripsHandler.Trips(w, r)
		}
	}, jwtCfg))

	// Itinerary routes
	http.HandleFunc("/api/itineraries", middleware.AuthMiddleware(itinerariesHandler.Itineraries, jwtCfg))
	http.HandleFunc("/api/itineraries/", middleware.AuthMiddleware(itinerariesHandler.Itineraries, jwtCfg))

	// Swagger documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("VoyageAI backend is running."))
}
