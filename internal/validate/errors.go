package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gyeh/subvalidate/internal/model"
)

// Kind tags which structural rule a submission broke.
type Kind int

const (
	HeaderMismatch Kind = iota + 1
	RowCountMismatch
	IdentifierMismatch
	DtypeMismatch
	UnexpectedNulls
)

var kindNames = map[Kind]string{
	HeaderMismatch:     "header_mismatch",
	RowCountMismatch:   "row_count_mismatch",
	IdentifierMismatch: "identifier_mismatch",
	DtypeMismatch:      "dtype_mismatch",
	UnexpectedNulls:    "unexpected_nulls",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels matched by errors.Is against a *ValidationError of the same kind.
var (
	ErrHeaderMismatch     = errors.New("header mismatch")
	ErrRowCountMismatch   = errors.New("row count mismatch")
	ErrIdentifierMismatch = errors.New("identifier mismatch")
	ErrDtypeMismatch      = errors.New("dtype mismatch")
	ErrUnexpectedNulls    = errors.New("unexpected nulls")
)

var kindSentinels = map[Kind]error{
	HeaderMismatch:     ErrHeaderMismatch,
	RowCountMismatch:   ErrRowCountMismatch,
	IdentifierMismatch: ErrIdentifierMismatch,
	DtypeMismatch:      ErrDtypeMismatch,
	UnexpectedNulls:    ErrUnexpectedNulls,
}

// ValidationError describes the single rule a submission violated. Only the
// payload fields belonging to Kind are populated.
type ValidationError struct {
	Kind Kind

	// HeaderMismatch
	ExpectedHeaders []string
	ActualHeaders   []string

	// RowCountMismatch
	ExpectedRows int
	ActualRows   int

	// IdentifierMismatch: first differing row and the two identifiers there.
	Position   int
	ExpectedID model.Value
	ActualID   model.Value

	// DtypeMismatch
	ExpectedDTypes []model.DType
	ActualDTypes   []model.DType

	// UnexpectedNulls: identifiers of rows with a missing cell, in row order.
	NullIDs []model.Value
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case HeaderMismatch:
		return fmt.Sprintf("CSV Headers do not match. Submission requires that first line is: \"%s\" You submitted: \"%s\"",
			strings.Join(e.ExpectedHeaders, ","), strings.Join(e.ActualHeaders, ","))
	case RowCountMismatch:
		return fmt.Sprintf("Submission has %d rows but should have %d.", e.ActualRows, e.ExpectedRows)
	case IdentifierMismatch:
		return fmt.Sprintf("IDs for submission are not correct. Row %d: expected %s, got %s.",
			e.Position, e.ExpectedID, e.ActualID)
	case DtypeMismatch:
		return fmt.Sprintf("Unexpected data types in submission.\n Expected dtypes: \t'%s'\n Submitted dtypes: \t'%s'",
			formatList(e.ExpectedDTypes), formatList(e.ActualDTypes))
	case UnexpectedNulls:
		return "Your submission contains NaNs or blanks, which are not expected. " +
			"Please change these to numeric predictions. See ids: " + formatList(e.NullIDs)
	}
	return e.Kind.String()
}

// Is lets errors.Is match the per-kind sentinels.
func (e *ValidationError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// IsAnticipated reports whether err carries one of the structural
// validation failures, as opposed to a load or configuration problem.
func IsAnticipated(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func formatList[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
