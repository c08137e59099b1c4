package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewRunID generates a new ULID string identifying one analyzer run.
// Run ids sort by creation time, so log lines and report metadata of
// consecutive runs order naturally.
var NewRunID = func() string {
	return ulid.Make().String()
}
