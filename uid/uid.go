// Package uid hands out layer identifiers
package uid

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/bpe/layer"
)

// Provider returns a fresh identifier on every call; it never returns layer.BackgroundUID
type Provider interface {
	Next() layer.UID
}

// Sequence numbers identifiers with a fixed prefix, starting at 1
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) Next() layer.UID {
	return layer.UID(s.prefix + strconv.FormatUint(s.n.Add(1), 10))
}

// UUID draws random version 4 identifiers
type UUID struct{}

func (UUID) Next() layer.UID {
	return layer.UID(uuid.NewString())
}

// Unique asks p until it yields an identifier taken rejects
func Unique(p Provider, taken func(layer.UID) bool) layer.UID {
	for {
		id := p.Next()
		if id != layer.BackgroundUID && !taken(id) {
			return id
		}
	}
}
