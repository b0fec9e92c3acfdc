package internal

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Decimal wraps an arbitrary-precision decimal for parsing heterogeneous
// numeric cells: "14", "1,250", "3.5", Excel day fractions like "0.375".
type Decimal struct {
	value apd.Decimal
}

func NewDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	var d apd.Decimal
	_, _, err := d.SetString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal: %w", err)
	}
	return Decimal{value: d}, nil
}

func NewDecimalFromInt64(i int64) Decimal {
	var d apd.Decimal
	d.SetInt64(i)
	return Decimal{value: d}
}

func (d Decimal) String() string {
	return d.value.String()
}

func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

func (d Decimal) Cmp(other Decimal) int {
	return d.value.Cmp(&other.value)
}

// Float64 returns the closest float64; 0 if the value does not convert.
func (d Decimal) Float64() float64 {
	f, err := d.value.Float64()
	if err != nil {
		return 0
	}
	return f
}

// Int truncates toward zero.
func (d Decimal) Int() int {
	var truncated apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Floor(&truncated, &d.value)
	if d.value.Negative {
		ctx.Ceil(&truncated, &d.value)
	}
	i, err := truncated.Int64()
	if err != nil {
		return 0
	}
	return int(i)
}

// cellString renders a raw cell value for string handling. Nil cells render
// empty; everything else goes through fmt.
func cellString(val any) string {
	if val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}

// parseStatus interprets a raw status cell as an occupancy flag.
//
// The recognized encodings are fixed: numeric 1/0 and case-insensitive
// strings — anything containing "unoccupied" is false; anything containing
// "occupied", or equal to "yes", "y", or "occ", is true. Everything else
// resolves false — a deliberate false-leaning default, never an error;
// notably boolean cells and "true"/"false" strings are NOT recognized
// encodings and take the default. The second return reports whether the
// value matched a recognized encoding, so callers can tally rows that fell
// through.
func parseStatus(val any) (occupied bool, recognized bool) {
	switch v := val.(type) {
	case nil:
		return false, false
	case int:
		return v == 1, v == 1 || v == 0
	case int64:
		return v == 1, v == 1 || v == 0
	case float64:
		return v == 1, v == 1 || v == 0
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		switch {
		case s == "1":
			return true, true
		case s == "0":
			return false, true
		case strings.Contains(s, "unoccupied"):
			return false, true
		case strings.Contains(s, "occupied"), s == "yes", s == "y", s == "occ":
			return true, true
		case s == "no", s == "n":
			return false, true
		}
		return false, false
	}
	return false, false
}

// parseCellInt extracts an integer from a raw cell. Decimal strings truncate
// toward zero, matching how attendee counts behave in the source data.
func parseCellInt(val any) (int, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		d, err := NewDecimal(v)
		if err != nil {
			return 0, false
		}
		return d.Int(), true
	}
	return 0, false
}

// parseCellFloat extracts a float from a raw cell.
func parseCellFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		d, err := NewDecimal(v)
		if err != nil {
			return 0, false
		}
		return d.Float64(), true
	}
	return 0, false
}

// minutesOfDay derives a best-effort minutes-since-midnight value from a
// time-slot label for chronological sorting.
//
// "HH:MM" parses directly; a bare decimal below 1 is treated as an Excel day
// fraction (×1440); a bare decimal of 1 or more is taken as already-minutes.
// Unparseable labels contribute 0 — they sort first rather than erroring.
func minutesOfDay(timeSlot string) float64 {
	s := strings.TrimSpace(timeSlot)
	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 3)
		h := leadingInt(parts[0])
		m := 0
		if len(parts) > 1 {
			m = leadingInt(parts[1])
		}
		return float64(h*60 + m)
	}
	d, err := NewDecimal(s)
	if err != nil {
		return 0
	}
	f := d.Float64()
	if f < 1 {
		return f * 1440
	}
	return f
}

// leadingInt parses the leading digits of a string, tolerating suffixes like
// "09:00 AM" → 9. Returns 0 when no digits lead.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}
