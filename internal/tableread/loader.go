package tableread

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/subvalidate/internal/model"
)

// Loader loads one table source with the given options.
type Loader interface {
	Load(ctx context.Context, source string, opts Options) (*model.Table, error)
}

// Router picks a loader by source: "pg:" sources go to Postgres, files
// ending in .parquet to the Parquet reader and everything else is read as
// delimited text.
type Router struct {
	CSV      Loader
	Parquet  Loader
	Postgres Loader
}

// NewRouter builds a Router. pool may be nil, in which case database sources
// are rejected.
func NewRouter(pool *pgxpool.Pool) *Router {
	r := &Router{CSV: CSVLoader{}, Parquet: ParquetLoader{}}
	if pool != nil {
		r.Postgres = &PostgresLoader{Pool: pool}
	}
	return r
}

// Load dispatches source to the matching loader.
func (r *Router) Load(ctx context.Context, source string, opts Options) (*model.Table, error) {
	var l Loader
	switch {
	case strings.HasPrefix(source, PostgresPrefix):
		if r.Postgres == nil {
			return nil, fmt.Errorf("%w: %s needs a database connection (--dsn)", ErrUnknownSource, source)
		}
		l = r.Postgres
	case strings.EqualFold(filepath.Ext(source), ".parquet"):
		l = r.Parquet
	default:
		l = r.CSV
	}
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
	return l.Load(ctx, source, opts)
}

// SameSource reports whether two source strings denote the same table.
// File paths are compared after cleaning.
func SameSource(a, b string) bool {
	if a == b {
		return true
	}
	if strings.HasPrefix(a, PostgresPrefix) || strings.HasPrefix(b, PostgresPrefix) {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
