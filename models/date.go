package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for order dates.
const DateLayout = "01/02/2006"

// Date is a calendar date serialized as MM/DD/YYYY in JSON and stored as a
// SQL date.
type Date time.Time

// Today returns the current date truncated to midnight UTC.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Time returns the underlying time value.
func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// MarshalJSON formats the date as "MM/DD/YYYY".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a "MM/DD/YYYY" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected MM/DD/YYYY: %w", s, err)
	}
	*d = Date(t)
	return nil
}

// Value implements driver.Valuer so GORM can store the date.
func (d Date) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date(v)
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
