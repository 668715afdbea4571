package postgres

import (
	"context"
	"fmt"

	"github.com/barekit/cohort/pkg/chunker"
	"github.com/barekit/cohort/pkg/index"
	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresIndex implements index.Index using pgvector. Namespaces share
// one table and are separated by a namespace column.
type PostgresIndex struct {
	db *gorm.DB
}

// ChunkModel represents the database schema for an embedded chunk.
type ChunkModel struct {
	ID        string `gorm:"primaryKey"`
	Namespace string `gorm:"index"`
	Text      string
	Embedding pgvector.Vector `gorm:"type:vector(1536)"` // Adjust dimension as needed
}

// TableName overrides the table name.
func (ChunkModel) TableName() string {
	return "chunks"
}

// New creates a new PostgresIndex.
func New(dsn string) (*PostgresIndex, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Enable pgvector extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("failed to enable pgvector extension: %w", err)
	}

	// AutoMigrate
	if err := db.AutoMigrate(&ChunkModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &PostgresIndex{db: db}, nil
}

func (s *PostgresIndex) Status(ctx context.Context, namespace string) (index.Status, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&ChunkModel{}).
		Where("namespace = ?", namespace).
		Count(&count).Error
	if err != nil {
		return index.Status{}, err
	}

	return index.Status{
		Exists:      count > 0,
		VectorCount: uint64(count),
	}, nil
}

func (s *PostgresIndex) Upsert(ctx context.Context, namespace string, chunks []chunker.Chunk, vectors [][]float32) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("number of vectors and chunks must match")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, chunk := range chunks {
			model := ChunkModel{
				ID:        namespace + "/" + chunk.ID(),
				Namespace: namespace,
				Text:      chunk.Text,
				Embedding: pgvector.NewVector(vectors[i]),
			}

			// Upsert
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"namespace", "text", "embedding"}),
			}).Create(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresIndex) Query(ctx context.Context, namespace string, vector []float32, limit int) ([]index.Match, error) {
	// pgvector's <=> operator is cosine distance; similarity = 1 - distance.
	var rows []struct {
		Text  string
		Score float32
	}

	q := pgvector.NewVector(vector)
	err := s.db.WithContext(ctx).
		Model(&ChunkModel{}).
		Select("text, 1 - (embedding <=> ?) AS score", q).
		Where("namespace = ?", namespace).
		Order(clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{q}}).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	matches := make([]index.Match, len(rows))
	for i, row := range rows {
		matches[i] = index.Match{Text: row.Text, Score: row.Score}
	}

	return matches, nil
}
