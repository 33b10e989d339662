package mapper

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResolver is returned when a mapper is built without a usable resolver.
var ErrInvalidResolver = errors.New("invalid entity resolver")

// UnexpectedTypeError reports a decode input that is neither a sequence nor an empty marker.
type UnexpectedTypeError struct {
	Value    any
	Expected string
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("expected argument of type %q, %T given", e.Expected, e.Value)
}

// EncodingError reports an entity that has no key in the resolver's candidate set.
type EncodingError struct {
	Entity any
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("entity %+v has no key in the choice list", e.Entity)
}

// TransformationError carries every key a decode could not resolve, in input order.
type TransformationError struct {
	Keys []Key
}

func (e *TransformationError) Error() string {
	quoted := make([]string, len(e.Keys))
	for i, key := range e.Keys {
		quoted[i] = fmt.Sprint(key)
	}
	return fmt.Sprintf(`The entities with keys "%s" could not be found`, strings.Join(quoted, `", "`))
}
