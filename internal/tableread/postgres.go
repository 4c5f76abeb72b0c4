package tableread

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/subvalidate/internal/model"
)

// PostgresPrefix marks a source naming a database table, e.g.
// "pg:submissions" or "pg:contest.format".
const PostgresPrefix = "pg:"

// PostgresLoader reads a whole table through a pgx pool. Rows are ordered by
// the first column since tables have no natural order.
type PostgresLoader struct {
	Pool *pgxpool.Pool
}

// Load runs SELECT * against the table named by source.
func (l *PostgresLoader) Load(ctx context.Context, source string, opts Options) (*model.Table, error) {
	name := strings.TrimPrefix(source, PostgresPrefix)
	if name == "" {
		return nil, fmt.Errorf("%w: %q names no table", ErrUnknownSource, source)
	}
	ident := pgx.Identifier(strings.Split(name, "."))

	rows, err := l.Pool.Query(ctx, "SELECT * FROM "+ident.Sanitize()+" ORDER BY 1")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	if len(fds) == 0 {
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query %s: %w", name, err)
		}
		return nil, ErrNoColumns
	}
	cols := make([]model.Column, len(fds))
	for i, fd := range fds {
		cols[i] = model.Column{Name: fd.Name, DType: pgDType(fd.DataTypeOID)}
	}

	nrows := 0
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("decode row %d of %s: %w", nrows, name, err)
		}
		for i, raw := range vals {
			cols[i].Values = append(cols[i].Values, pgValue(raw))
		}
		nrows++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	for i := range cols {
		widenForNulls(&cols[i])
	}
	t, err := splitIndex(source, cols, nil, nrows, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return t, nil
}

func pgDType(oid uint32) model.DType {
	switch oid {
	case pgtype.Int2OID, pgtype.Int4OID, pgtype.Int8OID:
		return model.DTypeInteger
	case pgtype.Float4OID, pgtype.Float8OID, pgtype.NumericOID:
		return model.DTypeFloat
	case pgtype.BoolOID:
		return model.DTypeBoolean
	case pgtype.DateOID, pgtype.TimestampOID, pgtype.TimestamptzOID:
		return model.DTypeDatetime
	default:
		return model.DTypeText
	}
}

// pgValue converts a decoded driver value to a cell.
func pgValue(raw any) model.Value {
	if raw == nil {
		return model.NullValue()
	}
	switch x := raw.(type) {
	case int16:
		return model.IntValue(int64(x))
	case int32:
		return model.IntValue(int64(x))
	case int64:
		return model.IntValue(x)
	case float32:
		return model.FloatValue(float64(x))
	case float64:
		return model.FloatValue(x)
	case bool:
		return model.BoolValue(x)
	case time.Time:
		return model.TimeValue(x)
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return model.NullValue()
		}
		return model.FloatValue(f.Float64)
	case string:
		return model.TextValue(x)
	}
	// infinity dates, uuids, json and other driver types render as text
	return model.TextValue(fmt.Sprint(raw))
}
