// Package random provides the random draws used by the games.
//
// Games depend on the Source interface so tests can script outcomes.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Source draws uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Source seeded with seed that is safe for concurrent use.
func New(seed uint64) Source {
	return &lockedSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewSeeded returns a Source seeded from crypto/rand.
func NewSeeded() (Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

// Chance reports true with probability 1/2.
func Chance(src Source) bool {
	return src.IntN(2) == 0
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Weighted is an outcome with a relative weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// PickWeighted draws one value with probability proportional to its weight.
// Entries with a non-positive weight are never drawn.
func PickWeighted[T any](src Source, table []Weighted[T]) T {
	total := 0
	for _, w := range table {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	n := src.IntN(total)
	for _, w := range table {
		if w.Weight <= 0 {
			continue
		}
		if n < w.Weight {
			return w.Value
		}
		n -= w.Weight
	}
	return table[len(table)-1].Value
}

// Shuffle permutes s in place.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Scripted replays a fixed sequence of draws, each reduced modulo n.
// It is meant for tests that need to force an outcome.
type Scripted struct {
	mu    sync.Mutex
	Draws []int
	next  int
}

// NewScripted returns a Scripted source over draws.
func NewScripted(draws ...int) *Scripted {
	return &Scripted{Draws: draws}
}

func (s *Scripted) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Draws) == 0 {
		return 0
	}
	v := s.Draws[s.next%len(s.Draws)]
	s.next++
	return v % n
}
