package match

import "context"

// Repository describes the write-side persistence the reconciliation flow
// needs. Implementations must honor an ambient transaction when one is
// carried by the context.
type Repository interface {
	GetByID(ctx context.Context, kind Kind, matchID string) (Match, bool, error)
	// GetForUpdate loads the match and locks its row for the remainder of
	// the ambient transaction.
	GetForUpdate(ctx context.Context, kind Kind, matchID string) (Match, bool, error)
	SetReportState(ctx context.Context, kind Kind, matchID string, state ReportState) error
	// Confirm stamps the official score, approves the match and moves it
	// to the given terminal report state.
	Confirm(ctx context.Context, kind Kind, matchID string, homeGoals, awayGoals int, state ReportState) error

	// ListBySlot returns every leg attached to a bracket slot of a cup.
	ListBySlot(ctx context.Context, cupID string, slotID int) ([]Match, error)
	// AssignSlotTeam fills one side of every leg in a bracket slot with
	// the team advancing into it.
	AssignSlotTeam(ctx context.Context, cupID string, slotID int, side Side, teamID string) error

	InsertBatch(ctx context.Context, matches []Match) error
}

// QueryRepository is the read side used by review, dashboard and public
// match endpoints.
type QueryRepository interface {
	ListByReportStates(ctx context.Context, states []ReportState) ([]Match, error)
	ListPendingByTeam(ctx context.Context, teamID string) ([]Match, error)
	ListRecentApproved(ctx context.Context, limit int) ([]Match, error)
	ListByCompetition(ctx context.Context, kind Kind, competitionID string) ([]Match, error)
	ListApprovedByCompetition(ctx context.Context, kind Kind, competitionID string) ([]Match, error)
	CountUnresolvedByCompetition(ctx context.Context, kind Kind, competitionID string) (int, error)
	GetDetail(ctx context.Context, kind Kind, matchID string) (Detail, bool, error)
	TopScorersByLeague(ctx context.Context, leagueID string, limit int) ([]ScorerTotal, error)
}
