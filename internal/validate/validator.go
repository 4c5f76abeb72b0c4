// Package validate checks a submitted table against a reference format table.
package validate

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/subvalidate/internal/model"
	"github.com/gyeh/subvalidate/internal/tableread"
)

// Validator loads a format table and a submission table and compares their
// structure: headers, row count, identifiers, dtypes and missing values.
type Validator struct {
	opts   tableread.Options
	loader tableread.Loader
	log    zerolog.Logger

	// Diag receives error messages from IsValid when printErrors is set.
	Diag io.Writer
}

// New returns a Validator. A nil or zero opts selects tableread.DefaultOptions.
func New(loader tableread.Loader, opts *tableread.Options, log zerolog.Logger) *Validator {
	o := tableread.DefaultOptions()
	if opts != nil && !opts.IsZero() {
		o = *opts
	}
	return &Validator{opts: o, loader: loader, log: log, Diag: os.Stderr}
}

// Options returns the load options handed to the loader.
func (v *Validator) Options() tableread.Options {
	return v.opts
}

// Validate loads both sources and runs the checks in order, stopping at the
// first failure. Comparing a source with itself returns the format table
// without loading anything else. With skipDatasetValidation the submission
// is returned as loaded.
func (v *Validator) Validate(ctx context.Context, formatSource, submissionSource string, skipDatasetValidation bool) (*model.Table, error) {
	log := v.log.With().Str("run_id", uuid.NewString()).Logger()

	format, err := v.loader.Load(ctx, formatSource, v.opts)
	if err != nil {
		return nil, fmt.Errorf("load format table: %w", err)
	}
	log.Debug().
		Str("source", formatSource).
		Int("rows", format.NumRows()).
		Int("columns", len(format.Columns)).
		Msg("format table loaded")

	if tableread.SameSource(formatSource, submissionSource) {
		log.Debug().Msg("submission is the format source, accepting")
		return format, nil
	}

	submission, err := v.loader.Load(ctx, submissionSource, v.opts)
	if err != nil {
		return nil, fmt.Errorf("load submission table: %w", err)
	}
	log.Debug().
		Str("source", submissionSource).
		Int("rows", submission.NumRows()).
		Int("columns", len(submission.Columns)).
		Msg("submission table loaded")

	if skipDatasetValidation {
		log.Debug().Msg("dataset validation skipped")
		return submission, nil
	}

	if err := Compare(format, submission); err != nil {
		log.Debug().Err(err).Msg("submission rejected")
		return nil, err
	}
	log.Debug().Msg("submission accepted")
	return submission, nil
}

// Compare runs the structural checks of submission against format. Neither
// table is modified.
func Compare(format, submission *model.Table) error {
	checks := []func(format, submission *model.Table) error{
		checkHeaders,
		checkRowCount,
		checkIdentifiers,
		checkDTypes,
		checkNulls,
	}
	for _, check := range checks {
		if err := check(format, submission); err != nil {
			return err
		}
	}
	return nil
}

// IsValid wraps Validate and reports success as a bool. It never returns or
// propagates an error, including panics raised while loading.
func (v *Validator) IsValid(ctx context.Context, formatSource, submissionSource string, printErrors bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if printErrors {
				fmt.Fprintln(v.Diag, r)
			}
			ok = false
		}
	}()

	if _, err := v.Validate(ctx, formatSource, submissionSource, false); err != nil {
		if printErrors {
			fmt.Fprintln(v.Diag, err.Error())
		}
		return false
	}
	return true
}

func checkHeaders(format, submission *model.Table) error {
	expected, actual := format.Headers(), submission.Headers()
	return compareOrdered(expected, actual, equalComparable[string], func(int) error {
		return &ValidationError{Kind: HeaderMismatch, ExpectedHeaders: expected, ActualHeaders: actual}
	})
}

func checkRowCount(format, submission *model.Table) error {
	if format.NumRows() != submission.NumRows() {
		return &ValidationError{Kind: RowCountMismatch, ExpectedRows: format.NumRows(), ActualRows: submission.NumRows()}
	}
	return nil
}

func checkIdentifiers(format, submission *model.Table) error {
	expected, actual := format.Index.Values, submission.Index.Values
	return compareOrdered(expected, actual, model.Value.Equal, func(pos int) error {
		e := &ValidationError{Kind: IdentifierMismatch, Position: pos}
		if pos < len(expected) {
			e.ExpectedID = expected[pos]
		}
		if pos < len(actual) {
			e.ActualID = actual[pos]
		}
		return e
	})
}

func checkDTypes(format, submission *model.Table) error {
	expected, actual := format.DTypes(), submission.DTypes()
	return compareOrdered(expected, actual, equalComparable[model.DType], func(int) error {
		return &ValidationError{Kind: DtypeMismatch, ExpectedDTypes: expected, ActualDTypes: actual}
	})
}

// checkNulls rejects missing cells only when the format table has none; a
// format with any missing cell declares them acceptable.
func checkNulls(format, submission *model.Table) error {
	if !submission.HasNulls() || format.HasNulls() {
		return nil
	}
	return &ValidationError{Kind: UnexpectedNulls, NullIDs: submission.NullRowIDs()}
}
