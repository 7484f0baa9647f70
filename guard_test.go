package wealth

import (
	"errors"
	"math"
	"testing"

	"github.com/etnz/wealth/numeric"
	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	positive := func(x int) error {
		if x <= 0 {
			return errors.New("not positive")
		}
		return nil
	}

	out := Guard("answer", -1, func() int { return 42 }, positive)
	assert.True(t, out.OK())
	assert.Equal(t, 42, out.Value)

	out = Guard("rejected", -1, func() int { return 0 }, positive)
	assert.False(t, out.OK())
	assert.Equal(t, -1, out.Value)
	assert.ErrorContains(t, out.Err, "rejected: not positive")

	out = Guard("nil", 7, nil)
	assert.ErrorIs(t, out.Err, ErrNilCalculation)
	assert.Equal(t, 7, out.Value)

	out = Guard("panic", 3, func() int {
		var m map[string]int
		m["boom"]++
		return 1
	})
	assert.ErrorIs(t, out.Err, ErrCalculationPanic)
	assert.Equal(t, 3, out.Value)
}

func TestGuardNumber(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		want    float64
		wantErr error
	}{
		{"regular", 12.5, 12.5, nil},
		{"zero", 0, 0, nil},
		{"NaN", math.NaN(), 1, numeric.ErrNonFinite},
		{"infinite", math.Inf(-1), 1, numeric.ErrNonFinite},
		{"overflow", 2e15, 1, numeric.ErrOverflow},
		{"underflow", 1e-9, 1, numeric.ErrUnderflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := GuardNumber(tt.name, 1, func() float64 { return tt.value })
			assert.Equal(t, tt.want, out.Value)
			if tt.wantErr == nil {
				assert.NoError(t, out.Err)
			} else {
				assert.ErrorIs(t, out.Err, tt.wantErr)
			}
		})
	}
}
