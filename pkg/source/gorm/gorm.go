package gorm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/barekit/cohort/pkg/document"
	"github.com/barekit/cohort/pkg/source/consts"
	"gorm.io/gorm"
)

// Source implements source.DocumentSource using GORM.
type Source struct {
	db *gorm.DB
}

// DocumentModel represents the database schema for a session document.
type DocumentModel struct {
	gorm.Model
	SessionID string `gorm:"index"`
	Name      string
	Text      string `gorm:"type:text"`
}

// TableName overrides the table name.
func (DocumentModel) TableName() string {
	return consts.TableNameDocuments
}

// New creates a new Source.
func New(db *gorm.DB) (*Source, error) {
	if err := db.AutoMigrate(&DocumentModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Source{db: db}, nil
}

// Add stores a document for a session.
func (s *Source) Add(ctx context.Context, sessionID, name, text string) error {
	model := DocumentModel{
		SessionID: sessionID,
		Name:      name,
		Text:      text,
	}
	return s.db.WithContext(ctx).Create(&model).Error
}

// ListDocuments loads all documents owned by a session, oldest first.
func (s *Source) ListDocuments(ctx context.Context, sessionID string) ([]document.Document, error) {
	var models []DocumentModel
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at asc").Find(&models).Error; err != nil {
		return nil, err
	}

	docs := make([]document.Document, len(models))
	for i, model := range models {
		docs[i] = document.Document{
			ID:   strconv.FormatUint(uint64(model.ID), 10),
			Name: model.Name,
			Text: model.Text,
		}
	}

	return docs, nil
}
