package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/openleague/openleague/internal/usecase"
)

func (h *Handler) ListMatchesForReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesForReview")
	defer span.End()

	items, err := h.queryService.ListForReview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list review queue failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]reviewItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, reviewItemToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveDispute")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	kind, err := matchKindFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req resolveDisputeRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	state, err := h.reconService.ResolveDispute(ctx, usecase.ResolveDisputeInput{
		Kind:            kind,
		MatchID:         matchID,
		WinningReportID: strings.TrimSpace(req.WinningReportID),
		AdminUserID:     principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resolve dispute failed", "match_id", matchID, "kind", string(kind), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportStateResponse{ReportState: string(state)})
}

func (h *Handler) OverrideResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OverrideResult")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	kind, err := matchKindFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req overrideResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.reconService.OverrideResult(ctx, usecase.OverrideResultInput{
		Kind:        kind,
		MatchID:     matchID,
		HomeGoals:   *req.HomeGoals,
		AwayGoals:   *req.AwayGoals,
		AdminUserID: principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "override result failed", "match_id", matchID, "kind", string(kind), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportStateResponse{ReportState: string(state)})
}

func (h *Handler) GenerateLeagueFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateLeagueFixture")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req generateFixtureRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	count, err := h.fixtureService.GenerateLeagueFixture(ctx, usecase.GenerateLeagueFixtureInput{
		LeagueID:  leagueID,
		StartDate: req.StartDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate league fixture failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, generateFixtureResponse{Matches: count})
}

func (h *Handler) CreateCup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCup")
	defer span.End()

	var req createCupRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.fixtureService.CreateCup(ctx, usecase.CreateCupInput{
		Name:      strings.TrimSpace(req.Name),
		Season:    strings.TrimSpace(req.Season),
		TeamIDs:   req.TeamIDs,
		StartDate: req.StartDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create cup failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, createCupResponse{
		Cup:     cupToDTO(out.Cup),
		Groups:  out.Groups,
		Matches: out.Matches,
	})
}

func (h *Handler) FinalizeSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeSeason")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	if err := h.seasonService.FinalizeSeason(ctx, leagueID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "finalize season failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "archived"})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Dashboard")
	defer span.End()

	snapshot, err := h.dashboardService.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshot)
}

func (h *Handler) RebuildStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RebuildStandings")
	defer span.End()

	var req rebuildStandingsRequest
	if r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	result, err := h.rebuildService.Rebuild(ctx, usecase.RebuildInput{MaxWorkers: req.MaxWorkers})
	if err != nil {
		h.logger.ErrorContext(ctx, "standings rebuild failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
