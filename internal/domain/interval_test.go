package domain

import (
	"testing"
	"time"
)

func TestTimeInterval_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	mk := func(startMin, endMin int) TimeInterval {
		return TimeInterval{
			Start: base.Add(time.Duration(startMin) * time.Minute),
			End:   base.Add(time.Duration(endMin) * time.Minute),
		}
	}

	tests := []struct {
		name string
		a, b TimeInterval
		want bool
	}{
		{name: "identical", a: mk(0, 45), b: mk(0, 45), want: true},
		{name: "partial overlap", a: mk(0, 45), b: mk(30, 75), want: true},
		{name: "contained", a: mk(0, 60), b: mk(15, 30), want: true},
		{name: "adjacent do not overlap", a: mk(0, 45), b: mk(45, 90), want: false},
		{name: "disjoint", a: mk(0, 15), b: mk(60, 75), want: false},
		{name: "one minute shared", a: mk(0, 31), b: mk(30, 60), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			// The predicate is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeInterval_Validate(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		iv      TimeInterval
		wantErr bool
	}{
		{name: "valid", iv: TimeInterval{Start: base, End: base.Add(45 * time.Minute)}, wantErr: false},
		{name: "zero start", iv: TimeInterval{End: base}, wantErr: true},
		{name: "zero end", iv: TimeInterval{Start: base}, wantErr: true},
		{name: "start equals end", iv: TimeInterval{Start: base, End: base}, wantErr: true},
		{name: "start after end", iv: TimeInterval{Start: base.Add(time.Hour), End: base}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.iv.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
