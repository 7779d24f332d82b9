package logging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Int64(t *testing.T) {
	tests := []struct {
		in      any
		want    int64
		present bool
		wantErr bool
	}{
		{nil, 0, false, false},
		{"", 0, false, false},
		{1000, 1000, true, false},
		{uint(7), 7, true, false},
		{float64(1 << 20), 1 << 20, true, false},
		{" 42 ", 42, true, false},
		{"big", 0, true, true},
		{"99999999999999999999", 0, true, true},
		{uint64(math.MaxInt64), math.MaxInt64, true, false},
		{uint64(math.MaxInt64) + 1, 0, true, true},
		{float64(math.MaxInt64), 0, true, true},
		{float64(-1e19), 0, true, true},
		{math.NaN(), 0, true, true},
		{float32(math.Inf(1)), 0, true, true},
		{[]int{1}, 0, true, true},
	}

	for _, tt := range tests {
		got, present, err := Params{ParamRollSize: tt.in}.Int64(ParamRollSize)
		assert.Equal(t, tt.present, present, "%v", tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		assert.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}
