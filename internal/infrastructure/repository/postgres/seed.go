package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type seedLeague struct {
	ID     string
	Name   string
	Season string
}

type seedTeam struct {
	ID            string
	LeagueID      string
	Name          string
	ManagerUserID string
}

// BootstrapSeed loads a demo league with four teams into an empty
// database. It is a no-op once any league exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	leagues := []seedLeague{
		{ID: "demo-league-2026", Name: "Demo Sunday League", Season: "2026"},
	}
	for _, l := range leagues {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (id, name, season, status, fixture_generated)
VALUES (:id, :name, :season, 'open', FALSE)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":     l.ID,
			"name":   l.Name,
			"season": l.Season,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	teams := []seedTeam{
		{ID: "demo-team-north", LeagueID: "demo-league-2026", Name: "Northside Rovers", ManagerUserID: "demo-manager-north"},
		{ID: "demo-team-south", LeagueID: "demo-league-2026", Name: "South End United", ManagerUserID: "demo-manager-south"},
		{ID: "demo-team-east", LeagueID: "demo-league-2026", Name: "East Park Wanderers", ManagerUserID: "demo-manager-east"},
		{ID: "demo-team-west", LeagueID: "demo-league-2026", Name: "West Gate Athletic", ManagerUserID: "demo-manager-west"},
	}
	for _, item := range teams {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (id, league_id, name, manager_user_id)
VALUES (:id, :league_id, :name, :manager_user_id)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":              item.ID,
			"league_id":       item.LeagueID,
			"name":            item.Name,
			"manager_user_id": item.ManagerUserID,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", item.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
