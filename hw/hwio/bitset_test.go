package hwio

import (
	"math/rand/v2"
	"testing"
)

const testBits = 4096

func TestBitset(t *testing.T) {
	b := NewBitset(testBits)
	for i := range testBits {
		if b.Test(uint(i)) {
			t.Fatalf("Bit %d is set", i)
		}
	}

	b.SetRange(0, testBits)
	for i := range testBits {
		if !b.Test(uint(i)) {
			t.Fatalf("Bit %d is not set", i)
		}
	}

	b.Reset()
	for i := range testBits {
		if b.Test(uint(i)) {
			t.Fatalf("Bit %d is set", i)
		}
	}

	for i := range testBits {
		b.Set(uint(i))
		if !b.Test(uint(i)) {
			t.Fatalf("Bit %d is not set", i)
		}
		b.Clear(uint(i))
		if b.Test(uint(i)) {
			t.Fatalf("Bit %d is set", i)
		}
	}
}

func TestBitsetRanges(t *testing.T) {
	b := NewBitset(testBits)

	for range 2000 {
		start := rand.UintN(testBits)
		end := rand.UintN(testBits)
		if start > end {
			start, end = end, start
		}
		if start == end {
			if start == 0 {
				end++
			} else {
				start--
			}
		}

		b.Reset()
		b.SetRange(start, end)
		for i := range testBits {
			ui := uint(i)
			if ui >= start && ui < end {
				if !b.Test(ui) {
					t.Fatalf("SetRange(%d, %d) but bit %d is not set", start, end, i)
				}
			} else {
				if b.Test(ui) {
					t.Fatalf("SetRange(%d, %d) but bit %d is set", start, end, i)
				}
			}
		}

		b.SetRange(0, testBits)
		b.ClearRange(start, end)
		for i := range testBits {
			ui := uint(i)
			if ui >= start && ui < end {
				if b.Test(ui) {
					t.Fatalf("ClearRange(%d, %d) but bit %d is set", start, end, i)
				}
			} else {
				if !b.Test(ui) {
					t.Fatalf("ClearRange(%d, %d) but bit %d is not set", start, end, i)
				}
			}
		}
	}
}

func TestBitsetInvalidRange(t *testing.T) {
	b := NewBitset(128)
	for _, r := range [][2]uint{{4, 4}, {5, 4}, {0, 129}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("SetRange(%d, %d) should panic", r[0], r[1])
				}
			}()
			b.SetRange(r[0], r[1])
		}()
	}
}
