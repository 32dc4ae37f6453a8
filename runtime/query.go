package runtime

import (
	"fmt"

	"github.com/google/uuid"
)

// QueryParam formats a value for use as a query string or header value.
// Generated code calls this for every scalar parameter rather than
// hand-rolling per-type formatting, mirroring progenitor's generated
// `.to_string()` calls on newtype-wrapped parameters.
func QueryParam(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case uuid.UUID:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
