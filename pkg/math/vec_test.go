package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	if got := (Vec2{3, 4}).Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	l := Vec2{3, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec2Lerp(t *testing.T) {
	got := Vec2{0, 10}.Lerp(Vec2{10, 20}, 0.25)
	if got != (Vec2{2.5, 12.5}) {
		t.Errorf("Vec2.Lerp() = %v", got)
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, a := range []float32{0, 0.5, 1.5, -2, 3} {
		got := FromAngle(a).Angle()
		if math.Abs(float64(got-a)) > 1e-5 {
			t.Errorf("FromAngle(%v).Angle() = %v", a, got)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{-1, 4, 3},
		{-4, 4, 0},
		{-5, 4, 3},
		{-7, 29, 22},
		{30, 29, 1},
	}
	for _, tt := range tests {
		if got := Wrap(tt.i, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestFract(t *testing.T) {
	tests := []struct{ v, want float32 }{
		{0, 0},
		{1.25, 0.25},
		{-0.25, 0.75},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := Fract(tt.v); got != tt.want {
			t.Errorf("Fract(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestWrapCentered(t *testing.T) {
	tests := []struct{ v, want float32 }{
		{0, 0},
		{31, 31},
		{32, -32},
		{-32, -32},
		{42, -22},
		{-86, -22},
	}
	for _, tt := range tests {
		if got := WrapCentered(tt.v, 64); got != tt.want {
			t.Errorf("WrapCentered(%v, 64) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for n, want := range map[int]bool{0: false, 1: true, 4: true, 6: false, 1024: true, -4: false} {
		if got := IsPowerOfTwo(n); got != want {
			t.Errorf("IsPowerOfTwo(%d) = %v", n, got)
		}
	}
}
