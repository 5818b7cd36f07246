package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day without time or zone. It is stored as SQL date and
// travels as "YYYY-MM-DD" in JSON.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Time() time.Time { return d.t }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	*d = parsed
	return nil
}

// UnmarshalText lets gin bind dates from query strings.
func (d *Date) UnmarshalText(b []byte) error {
	return d.UnmarshalJSON([]byte(`"` + string(b) + `"`))
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

// scanString accepts a bare date and the timestamp forms some drivers
// return for date columns.
func (d *Date) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		if parsed, err := ParseDate(s[:len(DateLayout)]); err == nil {
			*d = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into Date", s)
}

func (Date) GormDataType() string {
	return "date"
}
