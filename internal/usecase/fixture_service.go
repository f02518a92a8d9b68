package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/schedule"
	"github.com/openleague/openleague/internal/domain/team"
	idgen "github.com/openleague/openleague/internal/platform/id"
	"github.com/openleague/openleague/internal/platform/logging"
)

// One matchday per week keeps amateur calendars predictable.
const matchdayInterval = 7 * 24 * time.Hour

// FixtureService turns competitions into playable calendars: double round
// robin for leagues, group stage plus knockout bracket for cups.
type FixtureService struct {
	tx      TxManager
	leagues league.Repository
	cups    cup.Repository
	teams   team.Repository
	matches match.Repository
	ids     idgen.Generator
	rnd     *rand.Rand
	logger  *logging.Logger
}

func NewFixtureService(
	tx TxManager,
	leagues league.Repository,
	cups cup.Repository,
	teams team.Repository,
	matches match.Repository,
	ids idgen.Generator,
	rnd *rand.Rand,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{
		tx:      tx,
		leagues: leagues,
		cups:    cups,
		teams:   teams,
		matches: matches,
		ids:     ids,
		rnd:     rnd,
		logger:  logger,
	}
}

type GenerateLeagueFixtureInput struct {
	LeagueID  string
	StartDate time.Time
}

// GenerateLeagueFixture builds the double round-robin calendar for a league
// once per season. Matchdays run weekly from the start date.
func (s *FixtureService) GenerateLeagueFixture(ctx context.Context, in GenerateLeagueFixtureInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GenerateLeagueFixture")
	defer span.End()

	if in.StartDate.IsZero() {
		return 0, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	var created int
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, ok, err := s.leagues.GetByID(ctx, in.LeagueID)
		if err != nil {
			return fmt.Errorf("load league: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: league=%s", ErrNotFound, in.LeagueID)
		}
		if l.Status != league.StatusOpen {
			return fmt.Errorf("%w: league=%s is archived", ErrConflict, in.LeagueID)
		}
		if l.FixtureGenerated {
			return fmt.Errorf("%w: league=%s already has a calendar", ErrConflict, in.LeagueID)
		}

		field, err := s.teams.ListByLeague(ctx, in.LeagueID)
		if err != nil {
			return fmt.Errorf("list league teams: %w", err)
		}
		teamIDs := make([]string, 0, len(field))
		for _, t := range field {
			teamIDs = append(teamIDs, t.ID)
		}

		pairings, err := schedule.RoundRobin(teamIDs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		batch := make([]match.Match, 0, len(pairings))
		for _, p := range pairings {
			matchID, err := s.ids.NewID()
			if err != nil {
				return fmt.Errorf("generate match id: %w", err)
			}
			batch = append(batch, match.Match{
				ID:            matchID,
				Kind:          match.KindLeague,
				CompetitionID: in.LeagueID,
				Matchday:      p.Matchday,
				HomeTeamID:    p.HomeTeamID,
				AwayTeamID:    p.AwayTeamID,
				State:         match.StatePending,
				ReportState:   match.ReportStateAwaiting,
				KickoffAt:     kickoffFor(in.StartDate, p.Matchday),
			})
		}

		if err := s.matches.InsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("insert fixtures: %w", err)
		}
		if err := s.leagues.MarkFixtureGenerated(ctx, in.LeagueID); err != nil {
			return fmt.Errorf("mark calendar generated: %w", err)
		}

		created = len(batch)
		s.logger.InfoContext(ctx, "league calendar generated",
			"league_id", in.LeagueID,
			"teams", len(teamIDs),
			"matches", created,
		)

		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

type CreateCupInput struct {
	Name      string
	Season    string
	TeamIDs   []string
	StartDate time.Time
}

type CreateCupOutput struct {
	Cup     cup.Cup
	Groups  [][]string
	Matches int
}

// CreateCup draws the field into groups, schedules the group stage, and
// lays out the knockout bracket whose pairings fill in as groups and ties
// resolve.
func (s *FixtureService) CreateCup(ctx context.Context, in CreateCupInput) (CreateCupOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.CreateCup")
	defer span.End()

	if in.StartDate.IsZero() {
		return CreateCupOutput{}, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	cupID, err := s.ids.NewID()
	if err != nil {
		return CreateCupOutput{}, fmt.Errorf("generate cup id: %w", err)
	}
	item := cup.Cup{ID: cupID, Name: in.Name, Season: in.Season}
	if err := item.Validate(); err != nil {
		return CreateCupOutput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	plan, err := schedule.CupDraw(in.TeamIDs, s.rnd)
	if err != nil {
		return CreateCupOutput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var out CreateCupOutput
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		known, err := s.teams.ListByIDs(ctx, in.TeamIDs)
		if err != nil {
			return fmt.Errorf("load cup field: %w", err)
		}
		if len(known) != len(in.TeamIDs) {
			return fmt.Errorf("%w: cup field references unknown teams", ErrInvalidInput)
		}

		if err := s.cups.Insert(ctx, item); err != nil {
			return fmt.Errorf("insert cup: %w", err)
		}

		batch := make([]match.Match, 0, len(plan.Matches))
		for _, planned := range plan.Matches {
			matchID, err := s.ids.NewID()
			if err != nil {
				return fmt.Errorf("generate match id: %w", err)
			}
			batch = append(batch, match.Match{
				ID:            matchID,
				Kind:          match.KindCup,
				CompetitionID: cupID,
				Matchday:      planned.Matchday,
				Phase:         planned.Phase,
				Group:         planned.Group,
				Leg:           planned.Leg,
				SlotID:        planned.SlotID,
				NextSlotID:    planned.NextSlotID,
				HomeTeamID:    planned.HomeTeamID,
				AwayTeamID:    planned.AwayTeamID,
				State:         match.StatePending,
				ReportState:   match.ReportStateAwaiting,
				KickoffAt:     kickoffFor(in.StartDate, planned.Matchday),
			})
		}
		if err := s.matches.InsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("insert cup fixtures: %w", err)
		}

		out = CreateCupOutput{Cup: item, Groups: plan.Groups, Matches: len(batch)}
		s.logger.InfoContext(ctx, "cup created",
			"cup_id", cupID,
			"teams", len(in.TeamIDs),
			"matches", len(batch),
		)

		return nil
	})
	if err != nil {
		return CreateCupOutput{}, err
	}

	return out, nil
}

func kickoffFor(start time.Time, matchday int) time.Time {
	if matchday < 1 {
		matchday = 1
	}
	return start.Add(time.Duration(matchday-1) * matchdayInterval)
}
