// Package store persists imported datasets for the CLI and server
// shells. The analysis engine itself never touches storage; commands
// load a dataset here and hand the records to the pipeline.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/anviksha/anviksha/internal/config"
	"github.com/anviksha/anviksha/internal/model"
)

// Dataset describes one imported dataset.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the persistence interface for imported datasets.
type Store interface {
	SaveDataset(ctx context.Context, name string, records []model.Tender) (*Dataset, error)
	GetDataset(ctx context.Context, id string) (*Dataset, []model.Tender, error)
	ListDatasets(ctx context.Context) ([]Dataset, error)
	DeleteDataset(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// ErrNotFound is returned when a dataset id does not exist.
var ErrNotFound = eris.New("store: dataset not found")

// Open constructs a Store from configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.SQLitePath)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
