package match

import (
	"fmt"
	"time"
)

// Kind tags which competition family a match belongs to. Persistence and
// queries must branch on this tag, never on caller-provided table names.
type Kind string

const (
	KindLeague Kind = "league"
	KindCup    Kind = "cup"
)

func ParseKind(v string) (Kind, error) {
	switch Kind(v) {
	case KindLeague, KindCup:
		return Kind(v), nil
	default:
		return "", fmt.Errorf("unknown match kind %q", v)
	}
}

// Phase is the cup stage a match belongs to. League matches carry no phase.
type Phase string

const (
	PhaseGroups        Phase = "groups"
	PhaseQuarterfinals Phase = "quarterfinals"
	PhaseSemifinals    Phase = "semifinals"
	PhaseFinal         Phase = "final"
)

// State is the lifecycle of the match result itself.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
)

// ReportState tracks the dual-report confirmation workflow.
type ReportState string

const (
	ReportStateAwaiting       ReportState = "awaiting_reports"
	ReportStatePartial        ReportState = "partially_reported"
	ReportStateDisputed       ReportState = "disputed"
	ReportStateAutoConfirmed  ReportState = "auto_confirmed"
	ReportStateAdminConfirmed ReportState = "admin_confirmed"
)

// Terminal reports whether the state can never change again through the
// regular reconciliation flow.
func (s ReportState) Terminal() bool {
	return s == ReportStateAutoConfirmed || s == ReportStateAdminConfirmed
}

// AcceptsReports reports whether a new team report may still be filed.
func (s ReportState) AcceptsReports() bool {
	return s == ReportStateAwaiting || s == ReportStatePartial
}

// Side is the home/away role a team occupies in a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

type Match struct {
	ID            string
	Kind          Kind
	CompetitionID string
	Matchday      int

	// Cup-only fields. Group is set for group-phase matches; the bracket
	// slot pair is set for elimination-phase matches.
	Phase         Phase
	Group         *int
	Leg           int
	SlotID        *int
	NextSlotID    *int

	// Team ids are empty on elimination matches whose participants are
	// still to be decided by an earlier slot.
	HomeTeamID string
	AwayTeamID string

	HomeGoals *int
	AwayGoals *int

	State       State
	ReportState ReportState
	KickoffAt   time.Time
}

func (m Match) HasTeam(teamID string) bool {
	if teamID == "" {
		return false
	}
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Elimination reports whether the match is part of the cup knockout bracket.
func (m Match) Elimination() bool {
	return m.Kind == KindCup && m.Phase != "" && m.Phase != PhaseGroups
}

// OpenForReporting reports whether team reports may be filed right now.
func (m Match) OpenForReporting() bool {
	return m.State == StatePending && m.ReportState.AcceptsReports()
}

// PlayerLine is a per-player stat line attached to a confirmed match.
type PlayerLine struct {
	PlayerID    string
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

// Detail is the public read model for a single match.
type Detail struct {
	Match       Match
	PlayerLines []PlayerLine
}

// ScorerTotal aggregates confirmed player lines for leaderboards.
type ScorerTotal struct {
	PlayerID string
	Matches  int
	Goals    int
	Assists  int
}
