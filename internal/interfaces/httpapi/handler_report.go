package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/openleague/openleague/internal/domain/report"
	"github.com/openleague/openleague/internal/usecase"
)

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitReport")
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

	var req submitReportRequest
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

	lines := make([]report.PlayerLine, 0, len(req.PlayerLines))
	for _, line := range req.PlayerLines {
		lines = append(lines, report.PlayerLine{
			PlayerID:    line.PlayerID,
			Goals:       line.Goals,
			Assists:     line.Assists,
			YellowCards: line.YellowCards,
			RedCards:    line.RedCards,
		})
	}

	out, err := h.intakeService.SubmitReport(ctx, principal, usecase.SubmitReportInput{
		Kind:        kind,
		MatchID:     matchID,
		HomeGoals:   *req.HomeGoals,
		AwayGoals:   *req.AwayGoals,
		ProofURL:    strings.TrimSpace(req.ProofURL),
		PlayerLines: lines,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit report failed", "match_id", matchID, "kind", string(kind), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submitReportResponse{
		ReportID:    out.ReportID,
		ReportState: string(out.ReportState),
	})
}

func (h *Handler) ListPendingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPendingMatches")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matches, err := h.queryService.ListPendingForManager(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list pending matches failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTOs(matches))
}
