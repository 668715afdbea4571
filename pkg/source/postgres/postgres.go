package postgres

import (
	"fmt"

	gormsrc "github.com/barekit/cohort/pkg/source/gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New creates a new Postgres document source.
func New(dsn string) (*gormsrc.Source, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return gormsrc.New(db)
}
