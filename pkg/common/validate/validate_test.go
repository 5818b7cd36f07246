package validate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
)

func TestDecimalBounds(t *testing.T) {
	tests := []struct {
		name  string
		value string
		p, s  int32
		want  string
	}{
		{"fits", "12345678.99", 10, 2, ""},
		{"max integer digits", "99999999", 10, 2, ""},
		{"nine integer digits", "123456789", 10, 2, OutOfBounds},
		{"negative over bound", "-123456789.00", 10, 2, OutOfBounds},
		{"three fraction digits", "1.005", 10, 2, TooPrecise},
		{"trailing zero is fine", "1.500", 10, 2, ""},
		{"wide column", "9999999999.99", 12, 2, ""},
		{"wide column overflow", "10000000000.00", 12, 2, OutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			Decimal("quantity", decimal.RequireFromString(tt.value), tt.p, tt.s, v)
			assert.Equal(t, tt.want, v["quantity"])
		})
	}
}

func TestAmountRejectsNegative(t *testing.T) {
	v := New()
	Amount("cost", decimal.RequireFromString("-1"), 15, 2, v)
	assert.Equal(t, Negative, v["cost"])

	v = New()
	OptionalAmount("cost", nil, 15, 2, v)
	assert.True(t, v.Empty())
}

func TestFirstViolationWins(t *testing.T) {
	v := New()
	RequiredString("name", " ", v)
	MaxLen("name", " ", 0, v)
	assert.Equal(t, Required, v["name"])
}

func TestOneOf(t *testing.T) {
	type kind string
	v := New()
	OneOf("contract_type", kind("sales"), []kind{"sales", "purchase"}, v)
	assert.True(t, v.Empty())

	OneOf("contract_type", kind("lease"), []kind{"sales", "purchase"}, v)
	assert.Equal(t, NotAllowed, v["contract_type"])
}

func TestMaxLenCountsRunes(t *testing.T) {
	v := New()
	MaxLen("name", "Ñandú", 5, v)
	assert.True(t, v.Empty())
}

func TestErr(t *testing.T) {
	v := New()
	require.NoError(t, v.Err())

	RequiredID("farm_id", uuid.Nil, v)
	err := v.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ValidationErr))

	var c *code.ErrCode
	require.ErrorAs(t, err, &c)
	assert.Equal(t, Required, c.Fields()["farm_id"])
}
