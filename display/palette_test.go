package display

import (
	"image/color"
	"testing"
)

var black = color.RGBA{A: 0xff}

func TestShadeBlackAtCap(t *testing.T) {
	for m := Mode(0); m < NumModes; m++ {
		for _, tc := range []struct{ count, maxIter uint8 }{
			{128, 128}, {200, 128}, {255, 255}, {0, 0}, {17, 16},
		} {
			if got := Shade(tc.count, tc.maxIter, m); got != black {
				t.Errorf("Shade(%d, %d, %s) = %v, want black", tc.count, tc.maxIter, m, got)
			}
		}
	}
}

func TestShadePure(t *testing.T) {
	for m := Mode(0); m < NumModes; m++ {
		first := Shade(42, 128, m)
		for i := 0; i < 5; i++ {
			if got := Shade(42, 128, m); got != first {
				t.Fatalf("Shade(42, 128, %s) not deterministic: %v vs %v", m, got, first)
			}
		}
	}
}

func TestShadeModesDistinct(t *testing.T) {
	seen := map[color.RGBA]Mode{}
	for m := Mode(0); m < NumModes; m++ {
		c := Shade(9, 128, m)
		if c == black {
			t.Errorf("Shade(9, 128, %s) is black below the cap", m)
		}
		if prev, dup := seen[c]; dup {
			t.Errorf("modes %s and %s agree on count 9: %v", prev, m, c)
		}
		seen[c] = m
	}
}

func TestShadeEmberChannels(t *testing.T) {
	got := Shade(9, 128, ModeEmber)
	want := color.RGBA{R: 72, G: 36, B: 18, A: 0xff}
	if got != want {
		t.Errorf("Shade(9, 128, ember) = %v, want %v", got, want)
	}
}

func TestModeCycle(t *testing.T) {
	m := ModeEmber
	for i := 0; i < int(NumModes); i++ {
		m = m.Next()
	}
	if m != ModeEmber {
		t.Errorf("cycling %d times from ember gave %s", NumModes, m)
	}
}
