package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
	"github.com/openleague/openleague/internal/domain/standings"
	"github.com/openleague/openleague/internal/domain/team"
)

type stubTx struct{}

func (stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

type stubMatches struct {
	byID     map[string]match.Match
	inserted []match.Match
}

func newStubMatches(items ...match.Match) *stubMatches {
	byID := make(map[string]match.Match, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &stubMatches{byID: byID}
}

func (s *stubMatches) get(kind match.Kind, matchID string) (match.Match, bool) {
	item, ok := s.byID[matchID]
	if !ok || item.Kind != kind {
		return match.Match{}, false
	}
	return item, true
}

func (s *stubMatches) GetByID(_ context.Context, kind match.Kind, matchID string) (match.Match, bool, error) {
	item, ok := s.get(kind, matchID)
	return item, ok, nil
}

func (s *stubMatches) GetForUpdate(_ context.Context, kind match.Kind, matchID string) (match.Match, bool, error) {
	item, ok := s.get(kind, matchID)
	return item, ok, nil
}

func (s *stubMatches) SetReportState(_ context.Context, kind match.Kind, matchID string, state match.ReportState) error {
	item, ok := s.get(kind, matchID)
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	item.ReportState = state
	s.byID[matchID] = item
	return nil
}

func (s *stubMatches) Confirm(_ context.Context, kind match.Kind, matchID string, homeGoals, awayGoals int, state match.ReportState) error {
	item, ok := s.get(kind, matchID)
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	item.HomeGoals = &homeGoals
	item.AwayGoals = &awayGoals
	item.State = match.StateApproved
	item.ReportState = state
	s.byID[matchID] = item
	return nil
}

func (s *stubMatches) ListBySlot(_ context.Context, cupID string, slotID int) ([]match.Match, error) {
	out := make([]match.Match, 0, 2)
	for _, item := range s.byID {
		if item.Kind != match.KindCup || item.CompetitionID != cupID {
			continue
		}
		if item.SlotID == nil || *item.SlotID != slotID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Leg < out[j].Leg })
	return out, nil
}

func (s *stubMatches) AssignSlotTeam(_ context.Context, cupID string, slotID int, side match.Side, teamID string) error {
	for id, item := range s.byID {
		if item.Kind != match.KindCup || item.CompetitionID != cupID {
			continue
		}
		if item.SlotID == nil || *item.SlotID != slotID {
			continue
		}
		if side == match.SideHome {
			item.HomeTeamID = teamID
		} else {
			item.AwayTeamID = teamID
		}
		s.byID[id] = item
	}
	return nil
}

func (s *stubMatches) InsertBatch(_ context.Context, items []match.Match) error {
	for _, item := range items {
		s.byID[item.ID] = item
	}
	s.inserted = append(s.inserted, items...)
	return nil
}

type stubMatchQueries struct {
	byStates    []match.Match
	pending     map[string][]match.Match
	recent      []match.Match
	byComp      map[string][]match.Match
	approved    map[string][]match.Match
	unresolved  map[string]int
	details     map[string]match.Detail
	topScorers  map[string][]match.ScorerTotal
	statesAsked []match.ReportState
}

func compKey(kind match.Kind, competitionID string) string {
	return string(kind) + "|" + competitionID
}

func (s *stubMatchQueries) ListByReportStates(_ context.Context, states []match.ReportState) ([]match.Match, error) {
	s.statesAsked = states
	return s.byStates, nil
}

func (s *stubMatchQueries) ListPendingByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	return s.pending[teamID], nil
}

func (s *stubMatchQueries) ListRecentApproved(_ context.Context, limit int) ([]match.Match, error) {
	if limit < len(s.recent) {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubMatchQueries) ListByCompetition(_ context.Context, kind match.Kind, competitionID string) ([]match.Match, error) {
	return s.byComp[compKey(kind, competitionID)], nil
}

func (s *stubMatchQueries) ListApprovedByCompetition(_ context.Context, kind match.Kind, competitionID string) ([]match.Match, error) {
	return s.approved[compKey(kind, competitionID)], nil
}

func (s *stubMatchQueries) CountUnresolvedByCompetition(_ context.Context, kind match.Kind, competitionID string) (int, error) {
	return s.unresolved[compKey(kind, competitionID)], nil
}

func (s *stubMatchQueries) GetDetail(_ context.Context, kind match.Kind, matchID string) (match.Detail, bool, error) {
	detail, ok := s.details[matchID]
	if !ok || detail.Match.Kind != kind {
		return match.Detail{}, false, nil
	}
	return detail, true, nil
}

func (s *stubMatchQueries) TopScorersByLeague(_ context.Context, leagueID string, limit int) ([]match.ScorerTotal, error) {
	totals := s.topScorers[leagueID]
	if limit < len(totals) {
		return totals[:limit], nil
	}
	return totals, nil
}

type stubReports struct {
	items []report.Report
}

func (s *stubReports) Insert(_ context.Context, item report.Report) error {
	s.items = append(s.items, item)
	return nil
}

func (s *stubReports) ListByMatch(_ context.Context, kind match.Kind, matchID string) ([]report.Report, error) {
	out := make([]report.Report, 0, 2)
	for _, item := range s.items {
		if item.MatchKind == kind && item.MatchID == matchID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubReports) ListByMatchIDs(_ context.Context, matchIDs []string) (map[string][]report.Report, error) {
	wanted := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[string][]report.Report)
	for _, item := range s.items {
		if _, ok := wanted[item.MatchID]; ok {
			out[item.MatchID] = append(out[item.MatchID], item)
		}
	}
	return out, nil
}

func (s *stubReports) ExistsForTeam(_ context.Context, kind match.Kind, matchID, teamID string) (bool, error) {
	for _, item := range s.items {
		if item.MatchKind == kind && item.MatchID == matchID && item.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

type appliedDelta struct {
	scope standings.Scope
	delta standings.Delta
}

type stubStandings struct {
	applied []appliedDelta
	rows    map[string][]standings.Row
	resets  []standings.Scope
}

func scopeKey(scope standings.Scope) string {
	return strings.Join([]string{string(scope.Kind), scope.CompetitionID, fmt.Sprint(scope.Group)}, "|")
}

func (s *stubStandings) ApplyDelta(_ context.Context, scope standings.Scope, delta standings.Delta) error {
	s.applied = append(s.applied, appliedDelta{scope: scope, delta: delta})
	return nil
}

func (s *stubStandings) ListByScope(_ context.Context, scope standings.Scope) ([]standings.Row, error) {
	items := s.rows[scopeKey(scope)]
	out := make([]standings.Row, len(items))
	copy(out, items)
	return out, nil
}

func (s *stubStandings) ResetScope(_ context.Context, scope standings.Scope) error {
	s.resets = append(s.resets, scope)
	return nil
}

type stubTeams struct {
	byID      map[string]team.Team
	byManager map[string]team.Team
}

func (s *stubTeams) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	item, ok := s.byID[teamID]
	return item, ok, nil
}

func (s *stubTeams) GetByManager(_ context.Context, userID string) (team.Team, bool, error) {
	item, ok := s.byManager[userID]
	return item, ok, nil
}

func (s *stubTeams) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(s.byID))
	for _, item := range s.byID {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubTeams) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if item, ok := s.byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubTeams) CountAll(_ context.Context) (int, error) {
	return len(s.byID), nil
}

type stubLeagues struct {
	byID      map[string]league.League
	generated []string
	statuses  map[string]league.Status
}

func (s *stubLeagues) List(_ context.Context) ([]league.League, error) {
	out := make([]league.League, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubLeagues) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	item, ok := s.byID[leagueID]
	return item, ok, nil
}

func (s *stubLeagues) MarkFixtureGenerated(_ context.Context, leagueID string) error {
	item, ok := s.byID[leagueID]
	if !ok {
		return fmt.Errorf("league %s not found", leagueID)
	}
	item.FixtureGenerated = true
	s.byID[leagueID] = item
	s.generated = append(s.generated, leagueID)
	return nil
}

func (s *stubLeagues) SetStatus(_ context.Context, leagueID string, status league.Status) error {
	item, ok := s.byID[leagueID]
	if !ok {
		return fmt.Errorf("league %s not found", leagueID)
	}
	item.Status = status
	s.byID[leagueID] = item
	if s.statuses == nil {
		s.statuses = make(map[string]league.Status)
	}
	s.statuses[leagueID] = status
	return nil
}

type stubCups struct {
	byID    map[string]cup.Cup
	winners map[string]string
}

func newStubCups(items ...cup.Cup) *stubCups {
	byID := make(map[string]cup.Cup, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &stubCups{byID: byID, winners: make(map[string]string)}
}

func (s *stubCups) Insert(_ context.Context, item cup.Cup) error {
	s.byID[item.ID] = item
	return nil
}

func (s *stubCups) GetByID(_ context.Context, cupID string) (cup.Cup, bool, error) {
	item, ok := s.byID[cupID]
	return item, ok, nil
}

func (s *stubCups) List(_ context.Context) ([]cup.Cup, error) {
	out := make([]cup.Cup, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubCups) SetWinner(_ context.Context, cupID, teamID string) error {
	item, ok := s.byID[cupID]
	if !ok {
		return fmt.Errorf("cup %s not found", cupID)
	}
	item.WinnerTeamID = teamID
	s.byID[cupID] = item
	s.winners[cupID] = teamID
	return nil
}

type stubProofChecker struct {
	err     error
	checked []string
}

func (s *stubProofChecker) CheckProof(_ context.Context, proofURL string) error {
	s.checked = append(s.checked, proofURL)
	return s.err
}
