package fog

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestTableMatchesDensity(t *testing.T) {
	m, err := NewModel(DefaultParams())
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	for _, density := range []float32{0.0025, 0.01, 0, 0.5} {
		p := m.Params()
		p.Density = density
		if err := m.SetParams(p); err != nil {
			t.Fatalf("SetParams(%v): %v", density, err)
		}

		table := m.Table()
		for z := 0; z < TableSize; z++ {
			want := float32(math.Exp(-float64(z) * float64(density)))
			if table[z] != want {
				t.Fatalf("density %v: table[%d] = %v, want %v", density, z, table[z], want)
			}
			if table[z] < 0 || table[z] > 1 {
				t.Fatalf("density %v: table[%d] = %v out of [0,1]", density, z, table[z])
			}
		}
	}
}

func TestTableRebuiltOncePerDensityChange(t *testing.T) {
	m, err := NewModel(DefaultParams())
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if m.builds != 0 {
		t.Fatalf("table built eagerly: builds = %d", m.builds)
	}

	for i := 0; i < 5; i++ {
		m.Prepare()
		_ = m.Factor(10)
	}
	if m.builds != 1 {
		t.Fatalf("expected 1 build, got %d", m.builds)
	}

	// Changing something other than density must not rebuild.
	p := m.Params()
	p.Color = color.RGBA{R: 1, G: 2, B: 3, A: 4}
	if err := m.SetParams(p); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	m.Prepare()
	if m.builds != 1 {
		t.Fatalf("colour change rebuilt the table: builds = %d", m.builds)
	}

	p.Density = 0.004
	if err := m.SetParams(p); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	m.Prepare()
	m.Prepare()
	if m.builds != 2 {
		t.Fatalf("expected 2 builds after density change, got %d", m.builds)
	}
}

func TestFactorModes(t *testing.T) {
	exp, _ := NewModel(Params{Mode: Exponential, Density: 0.01})
	if got, want := exp.Factor(100), ExponentialFactor(0.01, 100); got != want {
		t.Errorf("exp Factor(100) = %v, want %v", got, want)
	}
	if got := exp.Factor(100); math.Abs(float64(got)-math.Exp(-1)) > 1e-6 {
		t.Errorf("exp Factor(100) = %v, want ~%v", got, math.Exp(-1))
	}
	if got := exp.Factor(0); got != 1 {
		t.Errorf("exp Factor(0) = %v, want 1", got)
	}
	// Beyond the table the factor is computed directly.
	if got, want := exp.Factor(2000), ExponentialFactor(0.01, 2000); got != want {
		t.Errorf("exp Factor(2000) = %v, want %v", got, want)
	}

	lin, err := NewModel(Params{Mode: Linear, Start: 300, End: 600})
	if err != nil {
		t.Fatalf("NewModel linear: %v", err)
	}
	tests := []struct {
		z    int
		want float32
	}{
		{0, 1},   // clamped from 2
		{300, 1}, // fog starts
		{450, 0.5},
		{600, 0},
		{900, 0}, // clamped from -1
	}
	for _, tt := range tests {
		if got := lin.Factor(tt.z); got != tt.want {
			t.Errorf("linear Factor(%d) = %v, want %v", tt.z, got, tt.want)
		}
	}
}

func TestLinearGuard(t *testing.T) {
	for _, p := range []Params{
		{Mode: Linear, Start: 600, End: 300},
		{Mode: Linear, Start: 300, End: 300},
	} {
		if _, err := NewModel(p); !errors.Is(err, ErrInvalidFog) {
			t.Errorf("NewModel(%+v) error = %v, want ErrInvalidFog", p, err)
		}
	}

	m, _ := NewModel(DefaultParams())
	before := m.Params()
	err := m.SetParams(Params{Mode: Linear, Start: 10, End: 5})
	if !errors.Is(err, ErrInvalidFog) {
		t.Fatalf("SetParams error = %v, want ErrInvalidFog", err)
	}
	if m.Params() != before {
		t.Error("rejected params were applied")
	}

	if got := LinearFactor(10, 5, 7); got != 1 {
		t.Errorf("LinearFactor with inverted range = %v, want 1", got)
	}
}

func TestNegativeDensityRejected(t *testing.T) {
	if _, err := NewModel(Params{Mode: Exponential, Density: -0.1}); !errors.Is(err, ErrInvalidFog) {
		t.Errorf("expected ErrInvalidFog, got %v", err)
	}
}

func TestComposite(t *testing.T) {
	fogColor := color.RGBA{R: 180, G: 180, B: 180, A: 255}
	tests := []struct {
		name string
		src  color.RGBA
		f    float32
		want color.RGBA
	}{
		{"no fog", color.RGBA{10, 20, 30, 255}, 1, color.RGBA{10, 20, 30, 255}},
		{"full fog", color.RGBA{10, 20, 30, 255}, 0, fogColor},
		{"half", color.RGBA{200, 100, 0, 255}, 0.5, color.RGBA{190, 140, 90, 255}},
		{"factor above one clamps", color.RGBA{250, 250, 250, 255}, 1.5, color.RGBA{250, 250, 250, 255}},
		{"factor below zero clamps", color.RGBA{0, 0, 0, 0}, -2, fogColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Composite(tt.src, fogColor, tt.f); got != tt.want {
				t.Errorf("Composite = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("linear"); err != nil || m != Linear {
		t.Errorf("ParseMode(linear) = %v, %v", m, err)
	}
	if m, err := ParseMode("exponential"); err != nil || m != Exponential {
		t.Errorf("ParseMode(exponential) = %v, %v", m, err)
	}
	if _, err := ParseMode("volumetric"); !errors.Is(err, ErrInvalidFog) {
		t.Errorf("ParseMode(volumetric) error = %v", err)
	}
	if Linear.String() != "linear" || Exponential.String() != "exponential" {
		t.Error("unexpected Mode.String output")
	}
}
