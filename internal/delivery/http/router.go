package http

import (
	"net/http"

	"stats-impact-backend/internal/delivery/http/handler"
	"stats-impact-backend/internal/delivery/http/middleware"
	"stats-impact-backend/internal/stats"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	statsHandler       *handler.StatsHandler
	exportHandler      *handler.ExportHandler
	pedagogieHandler   *handler.PedagogieHandler
	participantHandler *handler.ParticipantHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	statsHandler *handler.StatsHandler,
	exportHandler *handler.ExportHandler,
	pedagogieHandler *handler.PedagogieHandler,
	participantHandler *handler.ParticipantHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		statsHandler:       statsHandler,
		exportHandler:      exportHandler,
		pedagogieHandler:   pedagogieHandler,
		participantHandler: participantHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Statistics dashboard + exports (protected, stats capability)
	statsRoutes := api.PathPrefix("/stats-impact").Subrouter()
	statsRoutes.Use(r.authMiddleware.Authenticate)
	statsRoutes.Use(middleware.RequireStatsView)
	statsRoutes.HandleFunc("", r.statsHandler.Dashboard).Methods(http.MethodGet)
	statsRoutes.HandleFunc("/magatomatique", r.statsHandler.Magato).Methods(http.MethodGet)
	statsRoutes.HandleFunc("/magatomatique.csv", r.exportHandler.PresencesCSV).Methods(http.MethodGet)
	statsRoutes.HandleFunc("/magatomatique.xlsx", r.exportHandler.Magato).Methods(http.MethodGet)
	statsRoutes.HandleFunc("/export/fields", r.exportHandler.Fields).Methods(http.MethodGet)
	statsRoutes.HandleFunc("/secteurs", r.statsHandler.Secteurs).Methods(http.MethodGet)
	statsRoutes.HandleFunc("/years", r.statsHandler.AvailableYears).Methods(http.MethodGet)

	// Pedagogical reporting (protected, stats capability)
	pedagogie := api.PathPrefix("/stats/pedagogie").Subrouter()
	pedagogie.Use(r.authMiddleware.Authenticate)
	pedagogie.Use(middleware.RequireStatsView)
	pedagogie.HandleFunc("/projets", r.pedagogieHandler.Projets).Methods(http.MethodGet)
	pedagogie.HandleFunc("/projets/{id}", r.pedagogieHandler.ProjetSynthese).Methods(http.MethodGet)
	pedagogie.HandleFunc("/ateliers/{id}", r.pedagogieHandler.AtelierSynthese).Methods(http.MethodGet)
	pedagogie.HandleFunc("/participants/{id}/bilan", r.pedagogieHandler.BilanParticipant).Methods(http.MethodGet)

	// Participant management (protected, stats capability; fine-grained
	// sector rules are enforced in the usecase)
	participants := api.PathPrefix("/participants").Subrouter()
	participants.Use(r.authMiddleware.Authenticate)
	participants.Use(middleware.RequireCapability(stats.CapStatsView, stats.CapStatsViewAll, stats.CapParticipantsViewAll))
	participants.HandleFunc("/quartiers", r.participantHandler.GetQuartiers).Methods(http.MethodGet)
	participants.HandleFunc("/{id}", r.participantHandler.GetParticipant).Methods(http.MethodGet)
	participants.HandleFunc("/{id}", r.participantHandler.UpdateParticipant).Methods(http.MethodPut)
	participants.HandleFunc("/{id}", r.participantHandler.DeleteParticipant).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
