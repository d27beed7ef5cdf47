package torrent

import "testing"

func TestMeter(t *testing.T) {
	meter := NewMeter(100)

	if f := meter.Fraction(); f != 0 {
		t.Errorf("Fraction: got %v at start, want 0", f)
	}

	last := 0.0
	for i := 0; i < 10; i++ {
		meter.AddRead(10)
		meter.AddHashed(5)

		f := meter.Fraction()
		if f < last {
			t.Fatalf("Fraction decreased from %v to %v", last, f)
		}
		last = f
	}

	// 100 read + 50 hashed out of 200
	if last != 0.75 {
		t.Errorf("Fraction: got %v, want 0.75", last)
	}

	meter.AddHashed(50)
	if f := meter.Fraction(); f != 1 {
		t.Errorf("Fraction: got %v at completion, want 1", f)
	}
}

func TestMeterEmpty(t *testing.T) {
	if f := NewMeter(0).Fraction(); f != 1 {
		t.Errorf("Fraction: got %v for empty input, want 1", f)
	}
}
