package mandel

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")
	// ErrIntegrity matches every *IntegrityError.
	ErrIntegrity = errors.New("integrity error")
	// ErrGatherTimeout is returned when a round's results did not all arrive in time.
	ErrGatherTimeout = errors.New("gather timed out")
)

// ConfigurationError rejects a round before any worker starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// IntegrityError means the gathered results do not describe exactly one
// complete image. The partial grid is discarded.
type IntegrityError struct {
	OwnerID int
	Reason  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("result from worker %d: %s", e.OwnerID, e.Reason)
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

func configErr(field, format string, a ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, a...)}
}

func integrityErr(owner int, format string, a ...any) error {
	return &IntegrityError{OwnerID: owner, Reason: fmt.Sprintf(format, a...)}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
