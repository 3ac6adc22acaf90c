package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans merge to hull",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other inside span keeps span",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 20, End: 30},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other extends start",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 5, End: 15},
			expected: Span{File: 1, Start: 5, End: 20},
		},
		{
			name:     "different file is ignored",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "cover with empty span at end",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 25, End: 25},
			expected: Span{File: 1, Start: 10, End: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.span.Cover(tt.other)
			if got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	span := Span{File: 1, Start: 10, End: 20}

	tests := []struct {
		name     string
		off      uint32
		expected bool
	}{
		{"before start", 9, false},
		{"at start", 10, true},
		{"inside", 15, true},
		{"at end is exclusive", 20, false},
		{"after end", 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := span.Contains(tt.off); got != tt.expected {
				t.Errorf("Contains(%d) = %v, want %v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestSpan_EmptyAndLen(t *testing.T) {
	if !(Span{File: 1, Start: 5, End: 5}).Empty() {
		t.Error("expected zero-length span to be empty")
	}
	if (Span{File: 1, Start: 5, End: 6}).Empty() {
		t.Error("expected non-zero span to not be empty")
	}
	if got := (Span{File: 1, Start: 5, End: 12}).Len(); got != 7 {
		t.Errorf("Len() = %d, want 7", got)
	}
}
