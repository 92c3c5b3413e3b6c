// Package refnum allocates reference numbers for issued documents.
//
// A reference number is globally unique with overwhelming probability without
// any round-trip to the store: uniqueness is probabilistic by construction
// (timestamp + randomness + token), and the store's unique constraint is the
// backstop for the astronomically unlikely collision.
package refnum

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reference is an allocated reference number in its printed form:
// <PREFIX>-<yyyyMMddHHmmssSSS>-<4 digit random>-<8 char token>.
type Reference string

func (r Reference) String() string { return string(r) }

// timestampLayout renders millisecond precision without separators so
// references sort lexically by issuance time.
const timestampLayout = "20060102150405.000"

var referencePattern = regexp.MustCompile(`^[A-Z]{2,8}-\d{17}-\d{4}-[0-9a-f]{8}$`)

// Allocator produces reference numbers for one document prefix.
// The zero value is not usable; construct with New.
type Allocator struct {
	prefix string
}

// New builds an allocator for the given printed prefix tag (e.g. "POA").
func New(prefix string) *Allocator {
	return &Allocator{prefix: strings.ToUpper(prefix)}
}

// Allocate produces a new reference number. Pure and non-failing: collisions
// are handled by the store's uniqueness constraint, not here.
func (a *Allocator) Allocate(now time.Time) Reference {
	ts := strings.Replace(now.Format(timestampLayout), ".", "", 1)
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return Reference(fmt.Sprintf("%s-%s-%04d-%s", a.prefix, ts, randomDigits(), token))
}

// randomDigits draws four decimal digits from crypto/rand.
func randomDigits() int {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failure is unrecoverable on supported platforms; fall
		// back to the uuid package's pool rather than returning an error from
		// a pure allocation.
		return int(uuid.New().ID() % 10000)
	}
	return int(binary.BigEndian.Uint64(buf[:]) % 10000)
}

// Valid reports whether raw matches the printed reference format. Inspector
// tooling uses this before recomputing a verification code.
func Valid(raw string) bool {
	return referencePattern.MatchString(raw)
}
