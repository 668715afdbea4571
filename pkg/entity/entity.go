package entity

import (
	"context"
	"strings"
)

// Profile is the text a user exposes for matching. Missing fields are
// treated as empty strings, never an error.
type Profile struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Role     string   `json:"role"`
	Skills   []string `json:"skills"`
}

// Team is the text a team exposes for matching.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LookingFor  string `json:"looking_for"`
	Description string `json:"description"`
}

// Bundle flattens a profile's role and skills into one lowercase string
// for embedding.
func (p Profile) Bundle() string {
	parts := make([]string, 0, len(p.Skills)+1)
	if p.Role != "" {
		parts = append(parts, p.Role)
	}
	for _, s := range p.Skills {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Bundle flattens what a team is looking for and its description into
// one lowercase string for embedding.
func (t Team) Bundle() string {
	parts := make([]string, 0, 2)
	if t.LookingFor != "" {
		parts = append(parts, t.LookingFor)
	}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Catalog lists the entities available for matching.
type Catalog interface {
	Profiles(ctx context.Context) ([]Profile, error)
	Teams(ctx context.Context) ([]Team, error)
}
