package model

// DType is the inferred data type of a column, decided once at load time.
type DType int

const (
	DTypeUnknown DType = iota
	DTypeInteger
	DTypeFloat
	DTypeText
	DTypeBoolean
	DTypeDatetime
)

// AllDTypes lists the concrete dtypes in canonical order.
var AllDTypes = []DType{DTypeInteger, DTypeFloat, DTypeText, DTypeBoolean, DTypeDatetime}

var dtypeNames = map[DType]string{
	DTypeUnknown:  "unknown",
	DTypeInteger:  "integer",
	DTypeFloat:    "float",
	DTypeText:     "text",
	DTypeBoolean:  "boolean",
	DTypeDatetime: "datetime",
}

func (d DType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// Numeric reports whether values of this dtype compare numerically.
func (d DType) Numeric() bool {
	return d == DTypeInteger || d == DTypeFloat
}

// DTypeByName returns the DType for the given name, or ok=false.
func DTypeByName(name string) (DType, bool) {
	for _, d := range AllDTypes {
		if d.String() == name {
			return d, true
		}
	}
	return DTypeUnknown, false
}
