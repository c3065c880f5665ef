package version

import "testing"

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"patch bump", "0.1.2", "0.1.3", true},
		{"patch older", "0.1.3", "0.1.2", false},
		{"equal", "1.0.0", "1.0.0", false},
		{"minor beats patch", "0.1.9", "0.2.0", true},
		{"major beats minor", "1.9.9", "2.0.0", true},
		{"numeric not lexical", "0.9.0", "0.10.0", true},
		{"major decides first", "2.0.0", "1.9.9", false},
		{"missing component falls through", "1.0", "1.0.1", false},
		{"non numeric falls through", "1.x.0", "1.2.0", false},
		{"non numeric then greater", "1.x.0", "1.2.1", true},
		{"empty component reads as zero", "1..1", "1.0.2", true},
		{"extra components ignored", "1.0.0.9", "1.0.0.1", false},
		{"empty strings", "", "", false},
		{"infinity is not a number", "1.0.0", "inf.0.0", false},
		{"nan literal is not a number", "nan.0.0", "1.0.0", false},
		{"hex is not a number", "0x1.0.0", "2.0.0", false},
		{"hex then greater", "0x1.0.0", "0x1.1.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNewer(tt.a, tt.b); got != tt.want {
				t.Fatalf("IsNewer(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
