package entity

import (
	"testing"
)

func TestProfile_Bundle(t *testing.T) {
	p := Profile{Role: "Backend Developer", Skills: []string{"Go", "PostgreSQL"}}
	if got := p.Bundle(); got != "backend developer go postgresql" {
		t.Errorf("unexpected bundle: %q", got)
	}
}

func TestProfile_Bundle_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
		want string
	}{
		{"empty profile", Profile{}, ""},
		{"role only", Profile{Role: "Designer"}, "designer"},
		{"skills only", Profile{Skills: []string{"Figma"}}, "figma"},
		{"blank skills skipped", Profile{Role: "QA", Skills: []string{"", "Cypress"}}, "qa cypress"},
	}

	for _, tc := range cases {
		if got := tc.p.Bundle(); got != tc.want {
			t.Errorf("%s: Bundle = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTeam_Bundle(t *testing.T) {
	team := Team{LookingFor: "Go Developer", Description: "Realtime Chat Platform"}
	if got := team.Bundle(); got != "go developer realtime chat platform" {
		t.Errorf("unexpected bundle: %q", got)
	}

	empty := Team{}
	if got := empty.Bundle(); got != "" {
		t.Errorf("expected empty bundle, got %q", got)
	}
}
