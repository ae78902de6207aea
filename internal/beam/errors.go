package beam

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// ConfigError reports an invalid beam configuration or request
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "beam: " + e.Msg
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// DeterminacyError reports a reaction system that is singular, under- or
// over-determined.
type DeterminacyError struct {
	Unresolved   []string
	Inconsistent int
	Err          error
}

func (e *DeterminacyError) Error() string {
	var parts []string
	if len(e.Unresolved) > 0 {
		parts = append(parts, "cannot determine "+strings.Join(e.Unresolved, ", "))
	}
	if e.Inconsistent > 0 {
		parts = append(parts, fmt.Sprintf("%d equation(s) contradict the others", e.Inconsistent))
	}
	if len(parts) == 0 && e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return "beam: structure is not determinate: " + strings.Join(parts, "; ")
}

func (e *DeterminacyError) Unwrap() error { return e.Err }

// StateError reports a query made before the step it depends on
type StateError struct {
	Op   string
	Need string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("beam: %s requires %s first", e.Op, e.Need)
}

// MissingValueError reports a numeric evaluation that met a symbol without a value
type MissingValueError = symbolic.UnboundError

// ErrNoExtremum is returned when no interval of a curve yields a candidate
var ErrNoExtremum = errors.New("beam: no extremum candidate could be evaluated")

// determinacy converts a solver failure into a DeterminacyError
func determinacy(err error) error {
	de := &DeterminacyError{Err: err}
	var se *symbolic.SolveError
	if errors.As(err, &se) {
		de.Unresolved = se.Unresolved
		de.Inconsistent = len(se.Inconsistent)
	}
	return de
}
