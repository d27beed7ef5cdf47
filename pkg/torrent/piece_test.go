package torrent

import "testing"

func TestAutoPieceLength(t *testing.T) {
	tests := []struct {
		total int64
		want  int64
	}{
		// everything under ~19 MiB collapses to the minimum
		{0, 1 << 14},
		{1, 1 << 14},
		{19200, 1 << 14},
		{1200000, 1 << 14},

		// around the target of 1200 pieces
		{1200 << 14, 1 << 14},
		{1200 << 20, 1 << 20},
		{1200 << 24, 1 << 24},

		// clamped at the maximum
		{1 << 40, 1 << 24},
	}

	for _, test := range tests {
		if got := AutoPieceLength(test.total); got != test.want {
			t.Errorf("AutoPieceLength(%d): got %d, want %d", test.total, got, test.want)
		}
	}
}

func TestValidPieceLength(t *testing.T) {
	tests := []struct {
		n     int64
		valid bool
	}{
		{1 << 14, true},
		{1 << 16, true},
		{1 << 24, true},
		{1 << 13, false},
		{1 << 25, false},
		{(1 << 16) + 1, false},
		{0, false},
		{-(1 << 16), false},
	}

	for _, test := range tests {
		if got := ValidPieceLength(test.n); got != test.valid {
			t.Errorf("ValidPieceLength(%d): got %v, want %v", test.n, got, test.valid)
		}
	}
}
