package source

import (
	"context"
	"fmt"

	"github.com/barekit/cohort/pkg/source/consts"
	"github.com/barekit/cohort/pkg/source/fs"
	mongosrc "github.com/barekit/cohort/pkg/source/mongo"
	"github.com/barekit/cohort/pkg/source/mssql"
	"github.com/barekit/cohort/pkg/source/mysql"
	"github.com/barekit/cohort/pkg/source/postgres"
	"github.com/barekit/cohort/pkg/source/sqlite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Type string

const (
	TypeSQLite     Type = "sqlite"
	TypePostgres   Type = "postgres"
	TypeMySQL      Type = "mysql"
	TypeMSSQL      Type = "mssql"
	TypeMongo      Type = "mongo"
	TypeFilesystem Type = "filesystem"
)

// Config holds configuration for document source adapters.
type Config struct {
	Type             Type
	ConnectionString string
	DBName           string
	// Dir is the root directory for the filesystem source.
	Dir string
}

// NewFactory creates a new document source based on the configuration.
func NewFactory(ctx context.Context, cfg Config) (DocumentSource, error) {
	switch cfg.Type {
	case TypeSQLite:
		return sqlite.New(cfg.ConnectionString)

	case TypePostgres:
		return postgres.New(cfg.ConnectionString)

	case TypeMySQL:
		return mysql.New(cfg.ConnectionString)

	case TypeMSSQL:
		return mssql.New(cfg.ConnectionString)

	case TypeMongo:
		opts := options.Client().ApplyURI(cfg.ConnectionString)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, fmt.Errorf("failed to ping mongo: %w", err)
		}
		dbName := consts.DefaultDBName
		if cfg.DBName != "" {
			dbName = cfg.DBName
		}
		return mongosrc.New(client, dbName, consts.TableNameDocuments), nil

	case TypeFilesystem:
		return fs.New(cfg.Dir), nil

	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
}
