package diagnostics

import (
	"fmt"
)

// ErrorCode identifies a class of diagnostic.
type ErrorCode string

// Folding diagnostics.
const (
	ErrF001 ErrorCode = "F001" // BTEST position out of range
	ErrF002 ErrorCode = "F002" // invalid DIM for a reduction
	ErrF003 ErrorCode = "F003" // DOT_PRODUCT vector sizes differ
	ErrF004 ErrorCode = "F004" // real conversion overflow
)

// Expression document errors.
const (
	ErrP001 ErrorCode = "P001" // malformed document
	ErrP002 ErrorCode = "P002" // unknown node
	ErrP003 ErrorCode = "P003" // invalid type
	ErrP004 ErrorCode = "P004" // invalid constant value
	ErrP005 ErrorCode = "P005" // shape does not match values
)

// Input errors.
const (
	ErrI001 ErrorCode = "I001" // cannot read input file
)

// Configuration errors.
const (
	ErrC001 ErrorCode = "C001" // cannot read configuration
	ErrC002 ErrorCode = "C002" // unsupported configuration version
	ErrC003 ErrorCode = "C003" // invalid setting
)

var errorMessages = map[ErrorCode]string{
	ErrF001: "POS=%d out of range for BTEST",
	ErrF002: "DIM=%d is not valid for an array of rank %d",
	ErrF003: "DOT_PRODUCT vectors have sizes %d and %d",
	ErrF004: "overflow converting %s to REAL(%d)",
	ErrP001: "malformed expression document: %s",
	ErrP002: "unknown expression node %s",
	ErrP003: "invalid type %q",
	ErrP004: "invalid %s value %q",
	ErrP005: "shape %v holds %d values, got %d",
	ErrI001: "cannot read input: %s",
	ErrC001: "cannot read configuration: %s",
	ErrC002: "configuration version %s does not satisfy %s",
	ErrC003: "invalid setting %s: %s",
}

// DiagnosticError is a message produced while loading or folding an
// analysis unit.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	File    string // source of the unit, if known
	Line    int    // 1-based line in File, 0 when unknown
	Unit    string // analysis unit ID
}

func (e *DiagnosticError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: error[%s]: %s", e.File, e.Line, e.Code, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: error[%s]: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("error[%s]: %s", e.Code, e.Message)
}

// NewError formats the message registered for code with args.
func NewError(code ErrorCode, file string, args ...interface{}) *DiagnosticError {
	format, ok := errorMessages[code]
	if !ok {
		format = "unknown error"
	}
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		File:    file,
	}
}

// NewErrorAt is NewError for a known source line.
func NewErrorAt(code ErrorCode, file string, line int, args ...interface{}) *DiagnosticError {
	err := NewError(code, file, args...)
	err.Line = line
	return err
}
