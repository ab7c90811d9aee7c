package flp

import (
	"errors"
	"fmt"
)

// PropertyNotSettableError reports an attempt to set a property whose
// backing event is absent from the project stream. Partial formats
// (FST presets) routinely omit most identifiers, so callers may check
// presence first or ignore this error.
type PropertyNotSettableError struct {
	Property string
}

func (e *PropertyNotSettableError) Error() string {
	return fmt.Sprintf("property %s cannot be set: backing event is absent", e.Property)
}

// InvalidValueError reports a caller-supplied value outside a
// property's documented domain.
type InvalidValueError struct {
	Property string
	Reason   string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Property, e.Reason)
}

// ExpectedValueError reports a value of the wrong shape, such as a
// version with the wrong number of components or a PPQ outside the
// fixed set FL Studio accepts.
type ExpectedValueError struct {
	Property string
	Want     string
}

func (e *ExpectedValueError) Error() string {
	return fmt.Sprintf("%s: expected %s", e.Property, e.Want)
}

// MissingDestinationError reports a save attempt when the project has
// no origin path and no explicit destination was given.
type MissingDestinationError struct{}

func (e *MissingDestinationError) Error() string {
	return "no destination path: project has no origin and none was given"
}

// ErrNoTimestamp is returned by CreatedOn and TimeSpent when the
// project stream carries no timestamp event.
var ErrNoTimestamp = errors.New("flp: project has no timestamp event")
