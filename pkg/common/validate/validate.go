// Package validate holds pure field checks. Each check records at most one
// violation per field, so callers can run them all and report every bad
// field at once.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/common/uuid"
)

type Violations map[string]string

const (
	Required     = "required"
	TooLong      = "too_long"
	NotAllowed   = "not_allowed"
	OutOfBounds  = "out_of_bounds"
	TooPrecise   = "too_many_fraction_digits"
	Negative     = "must_not_be_negative"
	BeforeStart  = "before_start_date"
	Mismatch     = "mismatch"
	Immutable    = "immutable"
	InvalidValue = "invalid"
)

func New() Violations { return Violations{} }

func (v Violations) Empty() bool { return len(v) == 0 }

// Add keeps the first violation recorded for a field.
func (v Violations) Add(field, reason string) {
	if _, ok := v[field]; !ok {
		v[field] = reason
	}
}

func (v Violations) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Err returns nil when there is nothing to report.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	fields := make(map[string]string, len(v))
	for k, r := range v {
		fields[k] = r
	}
	return code.ValidationErr.WithFields(fields)
}

func RequiredString(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, Required)
	}
}

func RequiredID(field string, id uuid.UUID, v Violations) {
	if id.IsNil() {
		v.Add(field, Required)
	}
}

// MaxLen counts runes, matching varchar(n) semantics.
func MaxLen(field, value string, n int, v Violations) {
	if len([]rune(value)) > n {
		v.Add(field, TooLong)
	}
}

func OneOf[T ~string](field string, value T, allowed []T, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, NotAllowed)
}

// Decimal checks value against a numeric(precision, scale) column. Values
// with more fraction digits than scale are rejected rather than rounded.
func Decimal(field string, value decimal.Decimal, precision, scale int32, v Violations) {
	if !value.Equal(value.Round(scale)) {
		v.Add(field, TooPrecise)
		return
	}
	if value.Abs().GreaterThanOrEqual(decimal.New(1, precision-scale)) {
		v.Add(field, OutOfBounds)
	}
}

func NonNegative(field string, value decimal.Decimal, v Violations) {
	if value.IsNegative() {
		v.Add(field, Negative)
	}
}

// Amount is Decimal plus NonNegative for money and measurement columns.
func Amount(field string, value decimal.Decimal, precision, scale int32, v Violations) {
	NonNegative(field, value, v)
	Decimal(field, value, precision, scale, v)
}

func OptionalAmount(field string, value *decimal.Decimal, precision, scale int32, v Violations) {
	if value != nil {
		Amount(field, *value, precision, scale, v)
	}
}
