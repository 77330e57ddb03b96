package chart

import "testing"

func TestLinearScale(t *testing.T) {
	s := NewLinearScale("x", AxisX, 0, 20)
	s.Start, s.End = 0, 40

	tests := []struct {
		name  string
		pixel float64
		want  float64
	}{
		{"start", 0, 0},
		{"middle", 20, 10},
		{"end", 40, 20},
		{"beyond end extrapolates", 60, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ValueAtPixel(tt.pixel); got != tt.want {
				t.Errorf("ValueAtPixel(%v) = %v, want %v", tt.pixel, got, tt.want)
			}
			if back := s.PixelForValue(tt.want); back != tt.pixel {
				t.Errorf("PixelForValue(%v) = %v, want %v", tt.want, back, tt.pixel)
			}
		})
	}
}

func TestLinearScaleDegenerate(t *testing.T) {
	s := NewLinearScale("x", AxisX, 3, 3)
	if got := s.ValueAtPixel(5); got != 3 {
		t.Errorf("ValueAtPixel on empty pixel range = %v, want 3", got)
	}
	s.Start, s.End = 0, 10
	if got := s.PixelForValue(3); got != 0 {
		t.Errorf("PixelForValue on empty value range = %v, want 0", got)
	}
}

func TestContainsPixel(t *testing.T) {
	s := NewLinearScale("y", AxisY, 0, 1)
	s.Start, s.End = 20, 2 // bottom to top
	if !s.ContainsPixel(10) {
		t.Error("ContainsPixel(10) = false, want true")
	}
	if s.ContainsPixel(21) {
		t.Error("ContainsPixel(21) = true, want false")
	}
	if s.IsHorizontal() {
		t.Error("y scale reported horizontal")
	}
}

func TestLabel(t *testing.T) {
	s := NewLinearScale("x", AxisX, 0, 1)
	if got := s.Label(1.5); got != "1.5" {
		t.Errorf("Label(1.5) = %q, want %q", got, "1.5")
	}
	s.Format = func(float64) string { return "fixed" }
	if got := s.Label(1); got != "fixed" {
		t.Errorf("Label with custom formatter = %q", got)
	}
}
