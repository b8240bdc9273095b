package domain

import "testing"

func TestHasContiguousRun(t *testing.T) {
	tests := []struct {
		name   string
		tokens []GridToken
		n      int
		want   bool
	}{
		{
			name:   "full hour",
			tokens: []GridToken{"2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-30", "2026-03-14-09-45"},
			n:      4,
			want:   true,
		},
		{
			name:   "gap breaks the run",
			tokens: []GridToken{"2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-45", "2026-03-14-10-00"},
			n:      4,
			want:   false,
		},
		{
			name:   "unsorted input",
			tokens: []GridToken{"2026-03-14-09-45", "2026-03-14-09-00", "2026-03-14-09-30", "2026-03-14-09-15"},
			n:      4,
			want:   true,
		},
		{
			name:   "run across hour boundary",
			tokens: []GridToken{"2026-03-14-09-30", "2026-03-14-09-45", "2026-03-14-10-00", "2026-03-14-10-15"},
			n:      4,
			want:   true,
		},
		{
			name:   "duplicates do not extend the run",
			tokens: []GridToken{"2026-03-14-09-00", "2026-03-14-09-00", "2026-03-14-09-15", "2026-03-14-09-15"},
			n:      4,
			want:   false,
		},
		{
			name:   "day boundary is not contiguous",
			tokens: []GridToken{"2026-03-14-23-30", "2026-03-14-23-45", "2026-03-15-08-00", "2026-03-15-08-15"},
			n:      3,
			want:   false,
		},
		{
			name:   "too few tokens",
			tokens: []GridToken{"2026-03-14-09-00", "2026-03-14-09-15"},
			n:      4,
			want:   false,
		},
		{
			name:   "empty set",
			tokens: nil,
			n:      4,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasContiguousRun(tt.tokens, tt.n); got != tt.want {
				t.Errorf("HasContiguousRun(%v, %d) = %v, want %v", tt.tokens, tt.n, got, tt.want)
			}
		})
	}
}
