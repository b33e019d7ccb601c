package easing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func offsets(c Curve, total int, amplitude float64) []int {
	got := make([]int, total)
	for i := range total {
		got[i] = c(i, total, amplitude)
	}
	return got
}

func TestTriangle(t *testing.T) {
	got := offsets(Triangle, 4, 2)
	want := []int{2, 1, 0, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected triangle offsets (-want +got):\n%s", diff)
	}
}

func TestSine(t *testing.T) {
	got := offsets(Sine, 6, 3)
	want := []int{0, 3, 3, 0, 3, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected sine offsets (-want +got):\n%s", diff)
	}
}

func TestCurveBounds(t *testing.T) {
	for _, name := range Names {
		curve, err := NewCurve(name)
		if err != nil {
			t.Fatalf("NewCurve(%q) failed: %v", name, err)
		}
		for _, amplitude := range []float64{2, 3, 5} {
			for total := 1; total <= 24; total++ {
				for i := range total {
					got := curve(i, total, amplitude)
					if got < 0 || float64(got) > amplitude {
						t.Errorf("%s(%d, %d, %v) = %d, outside [0, %v]", name, i, total, amplitude, got, amplitude)
					}
				}
			}
		}
	}
}

func TestShapedCurvesHop(t *testing.T) {
	for _, name := range []string{"outquad", "outcubic", "outcirc"} {
		t.Run(name, func(t *testing.T) {
			curve, _ := NewCurve(name)
			got := offsets(curve, 8, 3)
			if got[0] != 0 || got[4] != 0 {
				t.Errorf("Expected ground contact at frames 0 and 4, got %v", got)
			}
			if got[2] != 3 || got[6] != 3 {
				t.Errorf("Expected peaks at frames 2 and 6, got %v", got)
			}
		})
	}
}

func TestNewCurve(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"triangle", false},
		{"Sine", false},
		{"", false},
		{"outcubic", false},
		{"elastic", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := NewCurve(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if curve == nil {
				t.Error("Expected curve, got nil")
			}
		})
	}
}
