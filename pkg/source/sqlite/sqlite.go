package sqlite

import (
	"fmt"

	gormsrc "github.com/barekit/cohort/pkg/source/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New creates a new SQLite document source.
func New(dsn string) (*gormsrc.Source, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return gormsrc.New(db)
}
