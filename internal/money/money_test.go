package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "1000", want: "1000.00"},
		{name: "two places", input: "12.34", want: "12.34"},
		{name: "one place", input: "0.5", want: "0.50"},
		{name: "trailing zeros allowed", input: "10.500", want: "10.50"},
		{name: "negative", input: "-200", want: "-200.00"},
		{name: "whitespace", input: " 7.10 ", want: "7.10"},
		{name: "three places", input: "1.005", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "huge exponent", input: "1e1000000000", wantErr: true},
		{name: "exponent overflow", input: "1e400", wantErr: true},
		{name: "small exponent", input: "1E2", wantErr: true},
		{name: "eleven integer digits", input: "12345678901.00", wantErr: true},
		{name: "largest storable", input: "9999999999.99", want: "9999999999.99"},
		{name: "largest negative", input: "-9999999999.99", want: "-9999999999.99"},
		{name: "too many fractional zeros", input: "1.0000000000000000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMoney)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 drifts in float64
	sum := MustParse("0.10").Add(MustParse("0.20"))
	assert.True(t, sum.Equal(MustParse("0.30")))

	total := Sum(MustParse("500"), MustParse("500"))
	assert.Equal(t, "0.00", MustParse("1000").Sub(total).String())
	assert.Equal(t, "-200.00", MustParse("1000").Sub(MustParse("1200")).String())
	assert.Equal(t, "0.00", Sum().String())
}

func TestPredicates(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.False(t, Zero.IsPositive())
	assert.True(t, FromCents(1).IsPositive())
	assert.True(t, FromCents(-1).IsNegative())
	assert.Equal(t, -1, FromCents(99).Cmp(FromCents(100)))
	assert.Equal(t, int64(123456), MustParse("1234.56").Cents())
	assert.Equal(t, "-0.01", FromCents(1).Neg().String())
}

func TestJSON(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}

	data, err := json.Marshal(payload{Amount: MustParse("1200.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1200.50"}`, string(data))

	var fromString payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"99.99"}`), &fromString))
	assert.Equal(t, "99.99", fromString.Amount.String())

	var fromNumber payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":42.1}`), &fromNumber))
	assert.Equal(t, "42.10", fromNumber.Amount.String())

	var bad payload
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"1.234"}`), &bad))
}

func TestScanValue(t *testing.T) {
	v, err := MustParse("15.5").Value()
	require.NoError(t, err)
	assert.Equal(t, "15.50", v)

	var m Money
	require.NoError(t, m.Scan("250.75"))
	assert.Equal(t, "250.75", m.String())

	require.NoError(t, m.Scan([]byte("1.00")))
	assert.Equal(t, "1.00", m.String())

	require.NoError(t, m.Scan(int64(3)))
	assert.Equal(t, "3.00", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(true))
}

func TestFromDecimalBounds(t *testing.T) {
	_, err := FromDecimal(decimal.New(1, 1000000000))
	assert.ErrorIs(t, err, ErrInvalidMoney)

	_, err = FromDecimal(decimal.New(1, -1000000000))
	assert.ErrorIs(t, err, ErrInvalidMoney)

	m, err := FromDecimal(decimal.New(25, 1))
	require.NoError(t, err)
	assert.Equal(t, "250.00", m.String())
}

func TestUnmarshalRejectsExponent(t *testing.T) {
	var m Money
	err := json.Unmarshal([]byte(`"1e1000000000"`), &m)
	assert.ErrorIs(t, err, ErrInvalidMoney)

	err = json.Unmarshal([]byte(`1e400`), &m)
	assert.ErrorIs(t, err, ErrInvalidMoney)
}
