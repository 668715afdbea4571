package mssql

import (
	"fmt"

	gormsrc "github.com/barekit/cohort/pkg/source/gorm"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// New creates a new SQL Server document source.
func New(dsn string) (*gormsrc.Source, error) {
	db, err := gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlserver: %w", err)
	}
	return gormsrc.New(db)
}
