package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/barekit/cohort/pkg/entity"
	"github.com/barekit/cohort/pkg/ranking"
)

// TeamMatch is a recommended team with its similarity score.
type TeamMatch struct {
	Team  entity.Team `json:"team"`
	Score float64     `json:"score"`
}

// ProfileMatch is a recommended profile with its similarity score.
type ProfileMatch struct {
	Profile entity.Profile `json:"profile"`
	Score   float64        `json:"score"`
}

// Recommender matches profiles against teams in both directions using
// the ranking engine over live catalog text. Nothing is persisted; every
// call embeds fresh bundles.
type Recommender struct {
	Catalog entity.Catalog
	Engine  *ranking.Engine
}

// New creates a new Recommender.
func New(catalog entity.Catalog, engine *ranking.Engine) *Recommender {
	return &Recommender{
		Catalog: catalog,
		Engine:  engine,
	}
}

// TeamsFor ranks teams for a profile. A profile with no role or skills,
// or an empty team catalog, yields an empty slice: no match is a valid
// outcome.
func (r *Recommender) TeamsFor(ctx context.Context, p entity.Profile, k int) ([]TeamMatch, error) {
	teams, err := r.Catalog.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	bundles := make([]string, len(teams))
	for i, t := range teams {
		bundles[i] = t.Bundle()
	}

	ranked, err := r.Engine.Rank(ctx, p.Bundle(), bundles, k)
	if errors.Is(err, ranking.ErrNoCandidates) {
		return []TeamMatch{}, nil
	}
	if err != nil {
		return nil, err
	}

	matches := make([]TeamMatch, len(ranked))
	for i, m := range ranked {
		matches[i] = TeamMatch{Team: teams[m.Index], Score: m.Score}
	}
	return matches, nil
}

// ProfilesFor ranks profiles for a team.
func (r *Recommender) ProfilesFor(ctx context.Context, t entity.Team, k int) ([]ProfileMatch, error) {
	profiles, err := r.Catalog.Profiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	bundles := make([]string, len(profiles))
	for i, p := range profiles {
		bundles[i] = p.Bundle()
	}

	ranked, err := r.Engine.Rank(ctx, t.Bundle(), bundles, k)
	if errors.Is(err, ranking.ErrNoCandidates) {
		return []ProfileMatch{}, nil
	}
	if err != nil {
		return nil, err
	}

	matches := make([]ProfileMatch, len(ranked))
	for i, m := range ranked {
		matches[i] = ProfileMatch{Profile: profiles[m.Index], Score: m.Score}
	}
	return matches, nil
}
