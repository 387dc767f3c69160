// Package idgen produces account numbers for the ledger.
package idgen

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a fresh candidate identifier on every call
type Generator interface {
	Next() string
}

// UUID cuts the first Length characters of a random v4 UUID
type UUID struct {
	Length int
}

// NewUUID creates a UUID generator producing identifiers of the given length
func NewUUID(length int) *UUID {
	return &UUID{Length: length}
}

// Next implements the Generator interface
func (g *UUID) Next() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if g.Length > 0 && g.Length < len(id) {
		return id[:g.Length]
	}
	return id
}

// Sequence yields zero-padded decimal numbers 1, 2, 3, ...
type Sequence struct {
	Width int
	n     atomic.Int64
}

// NewSequence creates a Sequence generator with the given width
func NewSequence(width int) *Sequence {
	return &Sequence{Width: width}
}

// Next implements the Generator interface
func (g *Sequence) Next() string {
	return fmt.Sprintf("%0*d", g.Width, g.n.Add(1))
}

// Func adapts a plain function to the Generator interface
type Func func() string

// Next implements the Generator interface
func (f Func) Next() string {
	return f()
}
