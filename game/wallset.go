package game

import (
	"math/bits"
	"strconv"
	"strings"
)

// WallSet is an immutable set of wall ids backed by a bitset. With and
// Without return new sets; the receiver is never modified. The backing slice
// is kept trimmed (no trailing zero words, nil when empty) so that two equal
// sets are also reflect.DeepEqual.
type WallSet struct {
	bits []uint64
}

func NewWallSet(walls ...int) WallSet {
	var s WallSet
	for _, w := range walls {
		s = s.With(w)
	}
	return s
}

func (s WallSet) Has(wall int) bool {
	i := wall / 64
	if wall < 0 || i >= len(s.bits) {
		return false
	}
	return s.bits[i]&(1<<(uint(wall)%64)) != 0
}

// HasAny reports whether any of walls is in the set.
func (s WallSet) HasAny(walls []int) bool {
	for _, w := range walls {
		if s.Has(w) {
			return true
		}
	}
	return false
}

func (s WallSet) With(wall int) WallSet {
	if wall < 0 || s.Has(wall) {
		return s
	}
	i := wall / 64
	n := len(s.bits)
	if i >= n {
		n = i + 1
	}
	out := make([]uint64, n)
	copy(out, s.bits)
	out[i] |= 1 << (uint(wall) % 64)
	return WallSet{bits: out}
}

func (s WallSet) Without(wall int) WallSet {
	if !s.Has(wall) {
		return s
	}
	out := make([]uint64, len(s.bits))
	copy(out, s.bits)
	out[wall/64] &^= 1 << (uint(wall) % 64)
	return WallSet{bits: trim(out)}
}

func (s WallSet) Union(other WallSet) WallSet {
	n := max(len(s.bits), len(other.bits))
	if n == 0 {
		return WallSet{}
	}
	out := make([]uint64, n)
	copy(out, s.bits)
	for i, w := range other.bits {
		out[i] |= w
	}
	return WallSet{bits: out}
}

func (s WallSet) Len() int {
	n := 0
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s WallSet) Empty() bool {
	return len(s.bits) == 0
}

// Slice returns the wall ids in ascending order.
func (s WallSet) Slice() []int {
	walls := make([]int, 0, s.Len())
	for i, w := range s.bits {
		for w != 0 {
			j := bits.TrailingZeros64(w)
			walls = append(walls, i*64+j)
			w &^= 1 << uint(j)
		}
	}
	return walls
}

func (s WallSet) Equal(other WallSet) bool {
	if len(s.bits) != len(other.bits) {
		return false
	}
	for i := range s.bits {
		if s.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

func (s WallSet) String() string {
	parts := []string{}
	for _, w := range s.Slice() {
		parts = append(parts, strconv.Itoa(w))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func trim(words []uint64) []uint64 {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return words[:n]
}
