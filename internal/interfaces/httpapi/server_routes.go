package httpapi

import (
	"net/http"

	"github.com/openleague/openleague/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/topscorers", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/cups/{cupID}/groups/{groupNo}/standings", handler.ListCupGroupStandings)
	mux.HandleFunc("GET /v1/cups/{cupID}/bracket", handler.GetCupBracket)
	mux.HandleFunc("GET /v1/matches/recent", handler.ListRecentMatches)
	mux.HandleFunc("GET /v1/matches/{kind}/{matchID}", handler.GetMatchDetail)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	manager := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireRole(user.RoleManager, h))
	}

	mux.Handle("POST /v1/matches/{kind}/{matchID}/reports", manager(handler.SubmitReport))
	mux.Handle("GET /v1/matches/pending", manager(handler.ListPendingMatches))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireRole(user.RoleAdmin, h))
	}

	mux.Handle("GET /v1/matches/review", admin(handler.ListMatchesForReview))
	mux.Handle("POST /v1/matches/{kind}/{matchID}/resolve", admin(handler.ResolveDispute))
	mux.Handle("PUT /v1/matches/{kind}/{matchID}/result", admin(handler.OverrideResult))
	mux.Handle("POST /v1/leagues/{leagueID}/fixture", admin(handler.GenerateLeagueFixture))
	mux.Handle("POST /v1/cups", admin(handler.CreateCup))
	mux.Handle("POST /v1/admin/leagues/{leagueID}/finalize", admin(handler.FinalizeSeason))
	mux.Handle("GET /v1/admin/dashboard", admin(handler.Dashboard))
	mux.Handle("POST /v1/admin/standings/rebuild", admin(handler.RebuildStandings))
}
