package tableread

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/subvalidate/internal/model"
)

// ParquetLoader reads flat Parquet files. Column dtypes come from the file
// schema rather than from sniffing values.
type ParquetLoader struct{}

// Load opens the Parquet file at source and reads every row group.
func (ParquetLoader) Load(_ context.Context, source string, opts Options) (*model.Table, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	t, err := readParquet(pf, opts)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", source, err)
	}
	t.Source = source
	return t, nil
}

type parquetColumn struct {
	dtype       model.DType
	date        bool
	timeUnit    time.Duration
	isTimestamp bool
	// decimal columns store unscaled integers; values are divided by scale.
	decimal bool
	scale   float64
}

func readParquet(pf *parquet.File, opts Options) (*model.Table, error) {
	fields := pf.Schema().Fields()
	if len(fields) == 0 {
		return nil, ErrNoColumns
	}

	specs := make([]parquetColumn, len(fields))
	cols := make([]model.Column, len(fields))
	for i, field := range fields {
		if !field.Leaf() || field.Repeated() {
			return nil, fmt.Errorf("column %q: nested or repeated columns are not supported", field.Name())
		}
		specs[i] = parquetColumnSpec(field)
		cols[i] = model.Column{
			Name:   field.Name(),
			DType:  specs[i].dtype,
			Values: make([]model.Value, 0, pf.NumRows()),
		}
	}

	buf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, readErr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, v := range row {
					c := v.Column()
					if c < 0 || c >= len(cols) {
						continue
					}
					cols[c].Values = append(cols[c].Values, specs[c].convert(v))
				}
			}
			if errors.Is(readErr, io.EOF) {
				break
			}
			if readErr != nil {
				rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", readErr)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("close row group: %w", err)
		}
	}

	for i := range cols {
		widenForNulls(&cols[i])
	}
	return splitIndex("", cols, nil, int(pf.NumRows()), opts)
}

func parquetColumnSpec(node parquet.Node) parquetColumn {
	typ := node.Type()
	lt := typ.LogicalType()

	if lt != nil && lt.Decimal != nil && (typ.Kind() == parquet.Int32 || typ.Kind() == parquet.Int64) {
		return parquetColumn{
			dtype:   model.DTypeFloat,
			decimal: true,
			scale:   math.Pow10(int(lt.Decimal.Scale)),
		}
	}

	switch typ.Kind() {
	case parquet.Boolean:
		return parquetColumn{dtype: model.DTypeBoolean}
	case parquet.Int32:
		if lt != nil && lt.Date != nil {
			return parquetColumn{dtype: model.DTypeDatetime, date: true}
		}
		return parquetColumn{dtype: model.DTypeInteger}
	case parquet.Int64:
		if lt != nil && lt.Timestamp != nil {
			unit := time.Nanosecond
			switch {
			case lt.Timestamp.Unit.Millis != nil:
				unit = time.Millisecond
			case lt.Timestamp.Unit.Micros != nil:
				unit = time.Microsecond
			}
			return parquetColumn{dtype: model.DTypeDatetime, isTimestamp: true, timeUnit: unit}
		}
		return parquetColumn{dtype: model.DTypeInteger}
	case parquet.Float, parquet.Double:
		return parquetColumn{dtype: model.DTypeFloat}
	default:
		return parquetColumn{dtype: model.DTypeText}
	}
}

func (p parquetColumn) convert(v parquet.Value) model.Value {
	if v.IsNull() {
		return model.NullValue()
	}
	switch v.Kind() {
	case parquet.Boolean:
		return model.BoolValue(v.Boolean())
	case parquet.Int32:
		if p.decimal {
			return model.FloatValue(float64(v.Int32()) / p.scale)
		}
		if p.date {
			return model.TimeValue(time.Unix(int64(v.Int32())*86400, 0).UTC())
		}
		return model.IntValue(int64(v.Int32()))
	case parquet.Int64:
		if p.decimal {
			return model.FloatValue(float64(v.Int64()) / p.scale)
		}
		if p.isTimestamp {
			d := time.Duration(v.Int64()) * p.timeUnit
			return model.TimeValue(time.Unix(0, 0).UTC().Add(d))
		}
		return model.IntValue(v.Int64())
	case parquet.Float:
		return model.FloatValue(float64(v.Float()))
	case parquet.Double:
		return model.FloatValue(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return model.TextValue(string(v.ByteArray()))
	default:
		return model.TextValue(v.String())
	}
}
