package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/platform/logging"
	"github.com/openleague/openleague/internal/usecase"
)

type Handler struct {
	intakeService    *usecase.ReportIntakeService
	reconService     *usecase.ReconciliationService
	fixtureService   *usecase.FixtureService
	queryService     *usecase.MatchQueryService
	standingsService *usecase.StandingsService
	seasonService    *usecase.SeasonService
	rebuildService   *usecase.RebuildService
	dashboardService *usecase.DashboardService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	intakeService *usecase.ReportIntakeService,
	reconService *usecase.ReconciliationService,
	fixtureService *usecase.FixtureService,
	queryService *usecase.MatchQueryService,
	standingsService *usecase.StandingsService,
	seasonService *usecase.SeasonService,
	rebuildService *usecase.RebuildService,
	dashboardService *usecase.DashboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		intakeService:    intakeService,
		reconService:     reconService,
		fixtureService:   fixtureService,
		queryService:     queryService,
		standingsService: standingsService,
		seasonService:    seasonService,
		rebuildService:   rebuildService,
		dashboardService: dashboardService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// matchKindFromPath resolves the {kind} path segment shared by the match
// routes.
func matchKindFromPath(r *http.Request) (match.Kind, error) {
	kind, err := match.ParseKind(strings.TrimSpace(r.PathValue("kind")))
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return kind, nil
}

// queryLimit parses an optional ?limit= parameter; zero means "use the
// service default".
func queryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw)
	}
	return limit, nil
}
