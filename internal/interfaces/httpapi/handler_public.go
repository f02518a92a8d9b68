package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/openleague/openleague/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.seasonService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rows, err := h.standingsService.LeagueTable(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTOs(rows))
}

func (h *Handler) ListCupGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCupGroupStandings")
	defer span.End()

	cupID := strings.TrimSpace(r.PathValue("cupID"))
	groupNo, err := strconv.Atoi(strings.TrimSpace(r.PathValue("groupNo")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid group number %q", usecase.ErrInvalidInput, r.PathValue("groupNo")))
		return
	}

	rows, err := h.standingsService.CupGroupTable(ctx, cupID, groupNo)
	if err != nil {
		h.logger.WarnContext(ctx, "list cup group standings failed", "cup_id", cupID, "group", groupNo, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTOs(rows))
}

func (h *Handler) GetCupBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCupBracket")
	defer span.End()

	cupID := strings.TrimSpace(r.PathValue("cupID"))
	item, matches, err := h.queryService.CupBracket(ctx, cupID)
	if err != nil {
		h.logger.WarnContext(ctx, "get cup bracket failed", "cup_id", cupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cupBracketDTO{
		Cup:     cupToDTO(item),
		Matches: matchesToDTOs(matches),
	})
}

func (h *Handler) ListRecentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentMatches")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.queryService.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list recent matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTOs(matches))
}

func (h *Handler) GetMatchDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetail")
	defer span.End()

	kind, err := matchKindFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	detail, err := h.queryService.GetDetail(ctx, kind, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match detail failed", "match_id", matchID, "kind", string(kind), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(detail))
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scorers, err := h.queryService.TopScorers(ctx, leagueID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorersToDTOs(scorers))
}
