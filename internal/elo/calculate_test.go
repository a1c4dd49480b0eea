package elo

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCalculator_Delta(t *testing.T) {
	type args struct {
		topRating     float64
		bottomRating  float64
		topOutcome    float64
		bottomOutcome float64
	}
	calc := Calculator{K: 15, Scale: 1000, Strategy: ApplyFull}
	tests := []struct {
		name       string
		args       args
		wantTop    float64
		wantBottom float64
	}{
		{
			name: "same rating 5 to 3",
			args: args{
				topRating:     100,
				bottomRating:  100,
				topOutcome:    5,
				bottomOutcome: 3,
			},
			wantTop:    1.875,
			wantBottom: -1.875,
		},
		{
			name: "same rating even",
			args: args{
				topRating:     100,
				bottomRating:  100,
				topOutcome:    4,
				bottomOutcome: 4,
			},
			wantTop:    0,
			wantBottom: 0,
		},
		{
			name: "same rating shutout",
			args: args{
				topRating:     100,
				bottomRating:  100,
				topOutcome:    0,
				bottomOutcome: 7,
			},
			wantTop:    -7.5,
			wantBottom: 7.5,
		},
		{
			name: "no decision with rating gap",
			args: args{
				topRating:     160,
				bottomRating:  90,
				topOutcome:    0,
				bottomOutcome: 0,
			},
			wantTop:    0,
			wantBottom: 0,
		},
		{
			name: "favourite wins by expected share",
			args: args{
				topRating:     1100,
				bottomRating:  100,
				topOutcome:    10,
				bottomOutcome: 1,
			},
			wantTop:    15 * (10.0/11.0 - 10.0/11.0),
			wantBottom: -15 * (10.0/11.0 - 10.0/11.0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTop, gotBottom := calc.Delta(tt.args.topRating, tt.args.bottomRating, tt.args.topOutcome, tt.args.bottomOutcome)
			if math.Abs(gotTop-tt.wantTop) > epsilon || math.Abs(gotBottom-tt.wantBottom) > epsilon {
				t.Errorf("Delta() = (%v, %v), want (%v, %v)", gotTop, gotBottom, tt.wantTop, tt.wantBottom)
			}
		})
	}
}

func TestCalculator_DeltaIsZeroSum(t *testing.T) {
	calc := Calculator{K: 15, Scale: 1000, Strategy: ApplyFull}
	for _, outcome := range [][2]float64{{1, 0}, {3, 9}, {2.5, 2.5}, {12, 1}} {
		top, bottom := calc.Delta(117.25, 84.5, outcome[0], outcome[1])
		if top != -bottom {
			t.Errorf("Delta(%v) = (%v, %v), not zero sum", outcome, top, bottom)
		}
	}
}

func TestActual(t *testing.T) {
	tests := []struct {
		name   string
		top    float64
		bottom float64
		want   float64
	}{
		{name: "no information", top: 0, bottom: 0, want: 0.5},
		{name: "share", top: 5, bottom: 3, want: 0.625},
		{name: "all top", top: 2, bottom: 0, want: 1},
		{name: "all bottom", top: 0, bottom: 2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Actual(tt.top, tt.bottom); got != tt.want {
				t.Errorf("Actual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculator_PerPlayer(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		size     int
		want     float64
	}{
		{name: "apply full", strategy: ApplyFull, size: 2, want: 3},
		{name: "divide", strategy: DivideByTeamSize, size: 2, want: 1.5},
		{name: "divide empty team", strategy: DivideByTeamSize, size: 0, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Calculator{K: 15, Scale: 1000, Strategy: tt.strategy}
			if got := c.PerPlayer(3, tt.size); got != tt.want {
				t.Errorf("PerPlayer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, err := New(15, 1000, "half"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("New() error = %v, want %v", err, ErrUnknownStrategy)
	}
	if _, err := New(0, 1000, ApplyFull); err == nil {
		t.Error("New() with zero k must fail")
	}
	c, err := New(15, 1000, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Strategy != ApplyFull {
		t.Errorf("New() strategy = %v, want %v", c.Strategy, ApplyFull)
	}
}

func TestTeamRating(t *testing.T) {
	if got := TeamRating([]float64{90, 110}); got != 100 {
		t.Errorf("TeamRating() = %v, want 100", got)
	}
	if got := TeamRating(nil); got != 0 {
		t.Errorf("TeamRating(nil) = %v, want 0", got)
	}
}
