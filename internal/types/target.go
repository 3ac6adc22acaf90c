package types

import (
	"fmt"
)

// Target describes the flat data model used for layout: the width of
// pointers and of long, which is also the maximum natural alignment.
type Target struct {
	PtrSize  int // bytes: 4 or 8
	PtrAlign int // bytes
}

// TargetForAlignment builds a Target from the configured pointer/long width.
func TargetForAlignment(n int) (Target, error) {
	if n != 4 && n != 8 {
		return Target{}, fmt.Errorf("invalid target alignment %d: must be 4 or 8", n)
	}
	return Target{PtrSize: n, PtrAlign: n}, nil
}

// AlignForSize returns the natural alignment for a scalar of the given size:
// the largest power of two not exceeding both the size and the target width.
func (t Target) AlignForSize(size int) int {
	maxAlign := t.PtrAlign
	if maxAlign <= 0 {
		maxAlign = 8
	}
	align := 1
	for align*2 <= size && align*2 <= maxAlign {
		align *= 2
	}
	return align
}
