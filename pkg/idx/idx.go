// Package idx mints the ULID identifiers used for every record the academy
// backend creates.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID in its canonical 26 character form.
type ID string

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID stamped with the current time. IDs minted by one
// process sort in creation order, even within the same millisecond.
func New() ID {
	return newAt(time.Now().UTC())
}

func newAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

func (id ID) String() string { return string(id) }

// Time is the creation time embedded in id, or the zero time if id is not a
// valid ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
