package model

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Strider draws how many squares a pawn advances.
type Strider interface {
	Stride() int
}

const maxStride = 2

// randStrider draws uniformly from 0..maxStride. Each game owns one and only
// calls it under the game lock.
type randStrider struct {
	rng *rand.Rand
}

func NewRandStrider(seed int64) Strider {
	return &randStrider{rng: rand.New(rand.NewSource(seed))}
}

func (s *randStrider) Stride() int {
	return s.rng.Intn(maxStride + 1)
}

// NewSeed reads a seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
