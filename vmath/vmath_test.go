package vmath

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		max  float64
		want float64
	}{
		{"inside", 120, 360, 120},
		{"exact max", 360, 360, 0},
		{"above", 725, 360, 5},
		{"negative", -10, 360, 350},
		{"tiny negative", -1e-18, 360, 0},
		{"nan", math.NaN(), 360, 0},
		{"zero max", 5, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.v, tc.max)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Wrap(%v, %v) = %v, want %v", tc.v, tc.max, got, tc.want)
			}
			if got < 0 || (tc.max > 0 && got >= tc.max) {
				t.Errorf("Wrap(%v, %v) = %v out of range", tc.v, tc.max, got)
			}
		})
	}
}

func TestAngleLengthRoundTrip(t *testing.T) {
	v := FromAngle(math.Pi/3, 5)
	if math.Abs(Length(v)-5) > 1e-9 {
		t.Errorf("length = %v, want 5", Length(v))
	}
	if math.Abs(Angle(v)-math.Pi/3) > 1e-9 {
		t.Errorf("angle = %v, want %v", Angle(v), math.Pi/3)
	}

	rotated := WithAngle(v, math.Pi)
	if math.Abs(Length(rotated)-5) > 1e-9 {
		t.Errorf("rotated length = %v, want 5", Length(rotated))
	}
	if math.Abs(rotated.X+5) > 1e-9 {
		t.Errorf("rotated X = %v, want -5", rotated.X)
	}
}

func TestDistance(t *testing.T) {
	d := Distance(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 3, Y: 4})
	if d != 5 {
		t.Errorf("distance = %v, want 5", d)
	}
	if DistanceSq(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5}) != 25 {
		t.Error("squared distance mismatch")
	}
}

func TestRangeValueRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := Span(10, 2)
	if r.Min != 2 || r.Max != 10 {
		t.Fatalf("Span did not order bounds: %+v", r)
	}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if !r.Contains(v) {
			t.Fatalf("sample %v outside %+v", v, r)
		}
	}
	if Fixed(3).Random(rng) != 3 {
		t.Error("fixed range should always sample its value")
	}
}

func TestRangeValueYAML(t *testing.T) {
	var doc struct {
		A RangeValue `yaml:"a"`
		B RangeValue `yaml:"b"`
	}
	src := "a: 4\nb:\n  min: 1\n  max: 3\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.A != Fixed(4) {
		t.Errorf("scalar range = %+v, want fixed 4", doc.A)
	}
	if doc.B != Span(1, 3) {
		t.Errorf("mapping range = %+v, want 1..3", doc.B)
	}
}
