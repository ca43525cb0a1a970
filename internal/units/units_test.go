package units

import "testing"

func TestToPixels_KnownValues(t *testing.T) {
	tests := []struct {
		mm   float64
		dpi  int
		want int
	}{
		{25.4, 300, 300},
		{25.4, 72, 72},
		{0, 300, 0},
		{85.60, 300, 1011},
		{53.98, 300, 638},
		{5, 300, 59},
	}
	for _, tt := range tests {
		got := ToPixels(tt.mm, tt.dpi)
		if got != tt.want {
			t.Errorf("ToPixels(%v, %d) = %d, want %d", tt.mm, tt.dpi, got, tt.want)
		}
	}
}

func TestToPixels_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if ToPixels(12.7, 300) != ToPixels(12.7, 300) {
			t.Fatal("ToPixels is not deterministic")
		}
	}
}

func TestToPixels_Monotonic(t *testing.T) {
	prev := ToPixels(0, 300)
	for mm := 0.1; mm < 100; mm += 0.1 {
		cur := ToPixels(mm, 300)
		if cur < prev {
			t.Fatalf("ToPixels not monotonic: ToPixels(%v)=%d < previous %d", mm, cur, prev)
		}
		prev = cur
	}
}

func TestCardSizePixels(t *testing.T) {
	w, h := CardSizePixels(300)
	if w != 1011 || h != 638 {
		t.Errorf("CardSizePixels(300) = (%d, %d), want (1011, 638)", w, h)
	}
	w72, h72 := CardSizePixels(72)
	if w72 >= w || h72 >= h {
		t.Errorf("lower DPI should give smaller canvas: got (%d, %d)", w72, h72)
	}
}
