package renderer

import "testing"

func TestLifeRatio(t *testing.T) {
	tests := []struct {
		remaining, lifetime, want float32
	}{
		{1, 2, 0.5},
		{2, 2, 1},
		{0, 2, 0},
		{-0.1, 2, 0},
		{3, 2, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := LifeRatio(tt.remaining, tt.lifetime); got != tt.want {
			t.Errorf("LifeRatio(%v, %v) = %v, want %v", tt.remaining, tt.lifetime, got, tt.want)
		}
	}
}
