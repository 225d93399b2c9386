package math

import (
	"testing"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		name       string
		a, b, t, w float32
	}{
		{"midpoint", 0, 10, 0.5, 5},
		{"start", -5, 5, 0, -5},
		{"end", -5, 5, 1, 5},
		{"extrapolate", 0, 1, 1.5, 1.5},
		{"negative range", 5, -5, 0.25, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, tt.t); got != tt.w {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.w)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5, 0, 1) = %v, want 0.5", got)
	}
}

func TestFloor(t *testing.T) {
	tests := []struct {
		v, want float32
	}{
		{1.7, 1},
		{-1.3, -2},
		{2, 2},
		{-3, -3},
		{0.99, 0},
	}

	for _, tt := range tests {
		if got := Floor(tt.v); got != tt.want {
			t.Errorf("Floor(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestAbs(t *testing.T) {
	if got := Abs(-2.5); got != 2.5 {
		t.Errorf("Abs(-2.5) = %v, want 2.5", got)
	}
	if got := Abs(2.5); got != 2.5 {
		t.Errorf("Abs(2.5) = %v, want 2.5", got)
	}
}
