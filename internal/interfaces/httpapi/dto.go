package httpapi

import (
	"time"

	"github.com/openleague/openleague/internal/domain/cup"
	"github.com/openleague/openleague/internal/domain/league"
	"github.com/openleague/openleague/internal/domain/match"
	"github.com/openleague/openleague/internal/domain/report"
	"github.com/openleague/openleague/internal/domain/standings"
	"github.com/openleague/openleague/internal/usecase"
)

type matchDTO struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	CompetitionID string    `json:"competition_id"`
	Matchday      int       `json:"matchday"`
	Phase         string    `json:"phase,omitempty"`
	Group         *int      `json:"group,omitempty"`
	Leg           int       `json:"leg"`
	HomeTeamID    string    `json:"home_team_id"`
	AwayTeamID    string    `json:"away_team_id"`
	HomeGoals     *int      `json:"home_goals"`
	AwayGoals     *int      `json:"away_goals"`
	State         string    `json:"state"`
	ReportState   string    `json:"report_state"`
	KickoffAt     time.Time `json:"kickoff_at"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:            m.ID,
		Kind:          string(m.Kind),
		CompetitionID: m.CompetitionID,
		Matchday:      m.Matchday,
		Phase:         string(m.Phase),
		Group:         m.Group,
		Leg:           m.Leg,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		HomeGoals:     m.HomeGoals,
		AwayGoals:     m.AwayGoals,
		State:         string(m.State),
		ReportState:   string(m.ReportState),
		KickoffAt:     m.KickoffAt,
	}
}

func matchesToDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

type reportDTO struct {
	ID         string    `json:"id"`
	TeamID     string    `json:"team_id,omitempty"`
	HomeGoals  int       `json:"home_goals"`
	AwayGoals  int       `json:"away_goals"`
	ProofURL   string    `json:"proof_url,omitempty"`
	ReportedBy string    `json:"reported_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func reportToDTO(item report.Report) reportDTO {
	return reportDTO{
		ID:         item.ID,
		TeamID:     item.TeamID,
		HomeGoals:  item.HomeGoals,
		AwayGoals:  item.AwayGoals,
		ProofURL:   item.ProofURL,
		ReportedBy: item.ReportedBy,
		CreatedAt:  item.CreatedAt,
	}
}

type reviewItemDTO struct {
	Match   matchDTO    `json:"match"`
	Reports []reportDTO `json:"reports"`
}

func reviewItemToDTO(item usecase.ReviewItem) reviewItemDTO {
	reports := make([]reportDTO, 0, len(item.Reports))
	for _, r := range item.Reports {
		reports = append(reports, reportToDTO(r))
	}
	return reviewItemDTO{
		Match:   matchToDTO(item.Match),
		Reports: reports,
	}
}

type playerLineDTO struct {
	PlayerID    string `json:"player_id"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

type matchDetailDTO struct {
	Match       matchDTO        `json:"match"`
	PlayerLines []playerLineDTO `json:"player_lines"`
}

func matchDetailToDTO(item match.Detail) matchDetailDTO {
	lines := make([]playerLineDTO, 0, len(item.PlayerLines))
	for _, line := range item.PlayerLines {
		lines = append(lines, playerLineDTO{
			PlayerID:    line.PlayerID,
			Goals:       line.Goals,
			Assists:     line.Assists,
			YellowCards: line.YellowCards,
			RedCards:    line.RedCards,
		})
	}
	return matchDetailDTO{
		Match:       matchToDTO(item.Match),
		PlayerLines: lines,
	}
}

type standingsRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

func standingsToDTOs(rows []standings.Row) []standingsRowDTO {
	out := make([]standingsRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingsRowDTO{
			Position:       row.Position,
			TeamID:         row.TeamID,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}

type leagueDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Season           string `json:"season"`
	Status           string `json:"status"`
	FixtureGenerated bool   `json:"fixture_generated"`
}

func leagueToDTO(item league.League) leagueDTO {
	return leagueDTO{
		ID:               item.ID,
		Name:             item.Name,
		Season:           item.Season,
		Status:           string(item.Status),
		FixtureGenerated: item.FixtureGenerated,
	}
}

type cupDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	WinnerTeamID string `json:"winner_team_id,omitempty"`
}

func cupToDTO(item cup.Cup) cupDTO {
	return cupDTO{
		ID:           item.ID,
		Name:         item.Name,
		Season:       item.Season,
		WinnerTeamID: item.WinnerTeamID,
	}
}

type cupBracketDTO struct {
	Cup     cupDTO     `json:"cup"`
	Matches []matchDTO `json:"matches"`
}

type scorerDTO struct {
	PlayerID string `json:"player_id"`
	Matches  int    `json:"matches"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}

func scorersToDTOs(items []match.ScorerTotal) []scorerDTO {
	out := make([]scorerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scorerDTO{
			PlayerID: item.PlayerID,
			Matches:  item.Matches,
			Goals:    item.Goals,
			Assists:  item.Assists,
		})
	}
	return out
}

type playerLineRequest struct {
	PlayerID    string `json:"player_id" validate:"required"`
	Goals       int    `json:"goals" validate:"min=0"`
	Assists     int    `json:"assists" validate:"min=0"`
	YellowCards int    `json:"yellow_cards" validate:"min=0"`
	RedCards    int    `json:"red_cards" validate:"min=0"`
}

type submitReportRequest struct {
	HomeGoals   *int                `json:"home_goals" validate:"required,min=0"`
	AwayGoals   *int                `json:"away_goals" validate:"required,min=0"`
	ProofURL    string              `json:"proof_url" validate:"required,url"`
	PlayerLines []playerLineRequest `json:"player_lines" validate:"omitempty,dive"`
}

type submitReportResponse struct {
	ReportID    string `json:"report_id"`
	ReportState string `json:"report_state"`
}

type resolveDisputeRequest struct {
	WinningReportID string `json:"winning_report_id"`
}

type overrideResultRequest struct {
	HomeGoals *int `json:"home_goals" validate:"required,min=0"`
	AwayGoals *int `json:"away_goals" validate:"required,min=0"`
}

type reportStateResponse struct {
	ReportState string `json:"report_state"`
}

type generateFixtureRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
}

type generateFixtureResponse struct {
	Matches int `json:"matches"`
}

type createCupRequest struct {
	Name      string    `json:"name" validate:"required,max=100"`
	Season    string    `json:"season" validate:"required,max=20"`
	TeamIDs   []string  `json:"team_ids" validate:"required,min=4,dive,required"`
	StartDate time.Time `json:"start_date" validate:"required"`
}

type createCupResponse struct {
	Cup     cupDTO     `json:"cup"`
	Groups  [][]string `json:"groups"`
	Matches int        `json:"matches"`
}

type rebuildStandingsRequest struct {
	MaxWorkers int `json:"max_workers" validate:"min=0"`
}
