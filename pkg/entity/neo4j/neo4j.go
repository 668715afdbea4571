package neo4j

import (
	"context"

	"github.com/barekit/cohort/pkg/entity"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	labelProfile = "Profile"
	labelTeam    = "Team"
)

// Neo4jCatalog implements entity.Catalog over a graph of Profile and
// Team nodes.
type Neo4jCatalog struct {
	driver neo4j.DriverWithContext
	dbName string
}

// New creates a new Neo4jCatalog adapter.
func New(uri, username, password, dbName string) (*Neo4jCatalog, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	return &Neo4jCatalog{
		driver: driver,
		dbName: dbName,
	}, nil
}

func (c *Neo4jCatalog) Profiles(ctx context.Context) ([]entity.Profile, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.dbName})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
		MATCH (p:` + labelProfile + `)
		RETURN p.id, p.full_name, p.role, p.skills
		ORDER BY p.id ASC
		`
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		var profiles []entity.Profile
		for result.Next(ctx) {
			record := result.Record()

			id, _ := record.Get("p.id")
			fullName, _ := record.Get("p.full_name")
			role, _ := record.Get("p.role")
			skills, _ := record.Get("p.skills")

			p := entity.Profile{
				ID:       asString(id),
				FullName: asString(fullName),
				Role:     asString(role),
			}
			if list, ok := skills.([]any); ok {
				for _, s := range list {
					p.Skills = append(p.Skills, asString(s))
				}
			}

			profiles = append(profiles, p)
		}

		return profiles, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]entity.Profile), nil
}

func (c *Neo4jCatalog) Teams(ctx context.Context) ([]entity.Team, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.dbName})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
		MATCH (t:` + labelTeam + `)
		RETURN t.id, t.name, t.looking_for, t.description
		ORDER BY t.id ASC
		`
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		var teams []entity.Team
		for result.Next(ctx) {
			record := result.Record()

			id, _ := record.Get("t.id")
			name, _ := record.Get("t.name")
			lookingFor, _ := record.Get("t.looking_for")
			description, _ := record.Get("t.description")

			teams = append(teams, entity.Team{
				ID:          asString(id),
				Name:        asString(name),
				LookingFor:  asString(lookingFor),
				Description: asString(description),
			})
		}

		return teams, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]entity.Team), nil
}

func (c *Neo4jCatalog) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// asString tolerates absent or null node properties.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
