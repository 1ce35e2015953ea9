package pricing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, Multiplier(1, 0))
	assert.Equal(t, 2.5, Multiplier(2, 1))
	assert.Equal(t, 0.5, Multiplier(0, 1))
	assert.Equal(t, 0.0, Multiplier(0, 0))
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2", 2, true},
		{"1.5 kg", 1.5, true},
		{"1,5 kg", 1.5, true},
		{"1/2 cup", 0.5, true},
		{"  250 g ", 250, true},
		{"a pinch", 0, false},
		{"", 0, false},
		{"1/0 cup", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}

func TestScaleFraction(t *testing.T) {
	assert.Equal(t, "1.00 cup", Scale("1/2 cup", 2))
}

func TestScalePassThrough(t *testing.T) {
	// 无法解析的数量不参与缩放，任何系数下都原样返回。
	for _, m := range []float64{0.5, 1, 2, 10} {
		assert.Equal(t, "a pinch", Scale("a pinch", m))
		assert.Equal(t, "to taste", Scale("to taste", m))
	}
}

func TestScaleIdentity(t *testing.T) {
	// 系数 1 不改变数值本身，只是重排为两位小数格式。
	cases := []string{"2 kg", "0.5 litre", "1/2 cup", "250 g", "3"}
	for _, in := range cases {
		orig, ok := ParseAmount(in)
		assert.True(t, ok, "input %q", in)

		scaled, ok2 := ParseAmount(Scale(in, 1))
		assert.True(t, ok2, "scaled %q", Scale(in, 1))
		assert.InDelta(t, orig, scaled, 0.005, "input %q", in)
	}
}

func TestScaleUnitPreserved(t *testing.T) {
	assert.Equal(t, "1.00 kg", Scale("0.5 kg", 2))
	assert.Equal(t, "0.75 litre", Scale("0.5 litre", 1.5))
	// 纯数值无单位
	assert.Equal(t, "4.00", Scale("2", 2))
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, rupees := range []float64{0, 0.01, 1, 59.99, 60, 1234.56} {
		paise := ToPaise(rupees)
		assert.InDelta(t, rupees, ToRupees(paise), 1e-9, fmt.Sprintf("rupees %v", rupees))
	}
	assert.Equal(t, int64(6000), ToPaise(60))
	assert.Equal(t, int64(1), ToPaise(0.005))
}
