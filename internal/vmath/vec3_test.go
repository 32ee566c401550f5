package vmath

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"Add", a.Add(b), Vec3{5, -3, 9}},
		{"Sub", a.Sub(b), Vec3{-3, 7, -3}},
		{"Scale", a.Scale(2), Vec3{2, 4, 6}},
		{"Cross", Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}), Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, tt.got)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"Axis", Vec3{0, 0, 5}, Vec3{0, 0, 1}},
		{"Diagonal", Vec3{3, 4, 0}, Vec3{0.6, 0.8, 0}},
		{"Zero", Vec3{}, Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !ApproxEqual(got, tt.want, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	got := Distance(Vec3{1, 1, 1}, Vec3{1, 1, 1}.Scale(-1))
	want := 2 * math.Sqrt(3)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
