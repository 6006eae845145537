package hwio

import "fmt"

const wordSize = 64

// Bitset is a fixed-size set of bits. Zero value is an empty set of size 0,
// use NewBitset.
type Bitset struct {
	n     uint
	words []uint64
}

// NewBitset returns a set of n bits, all cleared.
func NewBitset(n uint) *Bitset {
	return &Bitset{
		n:     n,
		words: make([]uint64, (n+wordSize-1)/wordSize),
	}
}

// Set sets the bit at index i.
func (b *Bitset) Set(i uint) {
	b.words[i/wordSize] |= 1 << (i % wordSize)
}

// Clear clears the bit at index i.
func (b *Bitset) Clear(i uint) {
	b.words[i/wordSize] &^= 1 << (i % wordSize)
}

// Test returns true if the bit at index i is set.
func (b *Bitset) Test(i uint) bool {
	return (b.words[i/wordSize] & (1 << (i % wordSize))) != 0
}

// SetRange sets all bits in the half-open interval [start, end).
// It panics if start >= end or end exceeds the set size.
func (b *Bitset) SetRange(start, end uint) {
	b.checkRange(start, end)
	startWord, endWord, first, last := b.rangeMasks(start, end)

	if startWord == endWord {
		b.words[startWord] |= first & last
		return
	}

	b.words[startWord] |= first
	for i := startWord + 1; i < endWord; i++ {
		b.words[i] = ^uint64(0)
	}
	b.words[endWord] |= last
}

// ClearRange clears all bits in the half-open interval [start, end).
// It panics if start >= end or end exceeds the set size.
func (b *Bitset) ClearRange(start, end uint) {
	b.checkRange(start, end)
	startWord, endWord, first, last := b.rangeMasks(start, end)

	if startWord == endWord {
		b.words[startWord] &^= first & last
		return
	}

	b.words[startWord] &^= first
	for i := startWord + 1; i < endWord; i++ {
		b.words[i] = 0
	}
	b.words[endWord] &^= last
}

func (b *Bitset) checkRange(start, end uint) {
	if start >= end || end > b.n {
		panic(fmt.Sprintf("invalid range [%d, %d)", start, end))
	}
}

// rangeMasks returns the words spanned by [start, end), the mask of the bits
// of the first word that are >= start and the mask of the bits of the last
// word that are < end.
func (b *Bitset) rangeMasks(start, end uint) (startWord, endWord uint, first, last uint64) {
	startWord = start / wordSize
	endWord = (end - 1) / wordSize
	first = ^uint64(0) << (start % wordSize)
	last = ^uint64(0) >> (wordSize - 1 - (end-1)%wordSize)
	return
}

// Reset clears all bits in the Bitset.
func (b *Bitset) Reset() {
	clear(b.words)
}
