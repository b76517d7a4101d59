package wfc

import "testing"

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		d    Direction
		want Direction
	}{
		{Top, Bottom},
		{Bottom, Top},
		{Left, Right},
		{Right, Left},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Opposite(); got != tt.want {
				t.Errorf("Opposite() = %v, want %v", got, tt.want)
			}
			if got := tt.d.Opposite().Opposite(); got != tt.d {
				t.Errorf("Opposite() should be involutive, got %v", got)
			}
		})
	}
}

func TestDirectionOffset(t *testing.T) {
	tests := []struct {
		d          Direction
		dx, dy     int
	}{
		{Top, 0, -1},
		{Bottom, 0, 1},
		{Left, -1, 0},
		{Right, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			dx, dy := tt.d.Offset()
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("Offset() = (%d,%d), want (%d,%d)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{Top, "TOP"},
		{Bottom, "BOTTOM"},
		{Left, "LEFT"},
		{Right, "RIGHT"},
		{Direction(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirectionOrderIsFixed(t *testing.T) {
	want := [4]Direction{Top, Bottom, Left, Right}
	if directionOrder != want {
		t.Errorf("directionOrder = %v, want %v", directionOrder, want)
	}
}
