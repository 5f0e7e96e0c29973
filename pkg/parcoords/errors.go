package parcoords

import (
	"errors"
	"fmt"
)

// Kind separates caller mistakes from a missing runtime collaborator.
type Kind int

const (
	KindConfig Kind = iota
	KindEnvironment
)

func (k Kind) String() string {
	if k == KindEnvironment {
		return "environment"
	}
	return "config"
}

// Error is returned when a chart cannot be constructed.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return "[parcoords] " + e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("[parcoords] %s: %v", e.Msg, e.Err)
	}
	return "[parcoords] " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrNoDimensions = errors.New("need at least one dimension")
	ErrNoData       = errors.New("no data supplied")
	ErrNoRecords    = errors.New("dimension data has no records")
	ErrUnequalData  = errors.New("dimension data are not all the same length")
	ErrMissingData  = errors.New("dimension has no data")
	ErrDuplicateKey = errors.New("duplicate dimension key")
	ErrNoMeasurer   = errors.New("no text measurer")
	ErrInvalid      = errors.New("invalid option")
)

func configError(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Msg: fmt.Sprintf(format, args...), Err: ErrInvalid}
}
