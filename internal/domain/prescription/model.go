package prescription

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no prescription matches the (owner, id)
// pair. Lookups never reveal whether the row exists under another owner.
var ErrNotFound = errors.New("prescription not found")

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. It marshals as
// "YYYY-MM-DD" and maps to a SQL DATE column. The zero value renders as
// JSON null and is treated as "not supplied" on input: both null and ""
// decode to it, which lets partial updates fall through to the stored
// value.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) String() string     { return d.t.Format(dateLayout) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// AddDays returns the date n days later, normalizing across month and
// year boundaries.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected a JSON string", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so the type binds to DATE columns.
func (d Date) Value() (driver.Value, error) {
	if d.t.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{t: time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Genders the store accepts for patientGender.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Prescription is one clinician-recorded entry. UserID is the owning
// clinician and is immutable after creation; every read and write is
// scoped to it.
type Prescription struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	PrescriptionDate Date      `json:"prescriptionDate"`
	PatientName      string    `json:"patientName"`
	PatientAge       int       `json:"patientAge"`
	PatientGender    string    `json:"patientGender"`
	Diagnosis        string    `json:"diagnosis"`
	Medicines        string    `json:"medicines"`
	NextVisitDate    *Date     `json:"nextVisitDate"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DayCount is one row of the day-wise report.
type DayCount struct {
	PrescriptionDate Date  `json:"prescriptionDate"`
	Count            int64 `json:"count"`
}
