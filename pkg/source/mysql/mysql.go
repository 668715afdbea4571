package mysql

import (
	"fmt"

	gormsrc "github.com/barekit/cohort/pkg/source/gorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// New creates a new MySQL document source.
func New(dsn string) (*gormsrc.Source, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	return gormsrc.New(db)
}
