package core

import "errors"

// Sentinel errors for core arena operations.
var (
	// ErrNetNotFound indicates an operation referenced a Net with no owning cell.
	ErrNetNotFound = errors.New("core: net not found")

	// ErrCellNotFound indicates an operation referenced a cell index out of range
	// or already tombstoned.
	ErrCellNotFound = errors.New("core: cell not found")

	// ErrWidthMismatch indicates an operand Value's width does not match what
	// the cell kind requires.
	ErrWidthMismatch = errors.New("core: operand width mismatch")

	// ErrEmptyValue indicates a Value was required to be non-empty but was not.
	ErrEmptyValue = errors.New("core: value must not be empty")

	// ErrAlreadyTombstoned indicates a cell index referenced after Unalive.
	ErrAlreadyTombstoned = errors.New("core: cell already removed")

	// ErrCyclicDesign reports a combinational cycle not broken by any stateful
	// cell. No function in core returns it: IterCellsTopo breaks such cycles
	// at the first re-entry and still orders every live cell.
	ErrCyclicDesign = errors.New("core: combinational cycle detected")
)

// ValidationError reports a cell-construction-time invariant violation, such
// as a width mismatch between a cell's declared width and its operands. It is
// always returned, never silently ignored or merely logged: per this
// module's error-handling design, a design is never left partially built on
// a failed construction.
type ValidationError struct {
	Op  string // the constructor or operation that failed, e.g. "NewAdc"
	Err error  // the underlying sentinel, e.g. ErrWidthMismatch
}

func (e *ValidationError) Error() string {
	return "core: " + e.Op + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func validationErr(op string, err error) *ValidationError {
	return &ValidationError{Op: op, Err: err}
}
