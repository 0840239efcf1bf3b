package catalog

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
)

// ErrInvalidTime is returned by ParseTime for unrecognised layouts.
var ErrInvalidTime = errors.New("invalid time")

// TimeLayouts are tried in order by ParseTime.
var TimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04PM",
	"2006-01-02",
}

// ParseTime parses s with the first matching layout of TimeLayouts. Layouts
// without a zone are interpreted in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range TimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}

// TimeRange validates startTime/endTime: both parse, both lie strictly after
// now() and end is strictly after start.
func TimeRange(now func() time.Time, loc *time.Location) agent.Validator {
	return func(f core.Fields) bool {
		start, err := ParseTime(f["startTime"], loc)
		if err != nil {
			return false
		}
		end, err := ParseTime(f["endTime"], loc)
		if err != nil {
			return false
		}
		n := now()
		return start.After(n) && end.After(n) && end.After(start)
	}
}

var (
	groupedNumber = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
	plainNumber   = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)$`)
)

// parseAmount parses a non-negative decimal with optional thousands separators.
func parseAmount(s string) (float64, bool) {
	switch {
	case groupedNumber.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case plainNumber.MatchString(s):
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// ValidQuantity reports whether s is a positive whole number ("250", "1,000").
func ValidQuantity(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ".") {
		return false
	}
	v, ok := parseAmount(s)
	return ok && v > 0
}

const currencySymbols = "$€£¥"

// ValidPrice reports whether s is "free" (any case) or a positive decimal,
// optionally prefixed by a currency symbol or ISO code, or suffixed by an ISO code.
func ValidPrice(s string) bool {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "free") {
		return true
	}
	if r, size := utf8.DecodeRuneInString(s); strings.ContainsRune(currencySymbols, r) {
		s = strings.TrimSpace(s[size:])
	} else if len(s) > 3 && isCode(s[:3]) {
		s = strings.TrimSpace(s[3:])
	}
	if len(s) > 3 && isCode(s[len(s)-3:]) {
		s = strings.TrimSpace(s[:len(s)-3])
	}
	v, ok := parseAmount(s)
	return ok && v > 0
}

func isCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Tickets validates ticketQuantity and ticketPrice.
func Tickets(f core.Fields) bool {
	return ValidQuantity(f["ticketQuantity"]) && ValidPrice(f["ticketPrice"])
}

// NonEmpty returns a validator requiring every named field to be set.
func NonEmpty(names ...string) agent.Validator {
	return func(f core.Fields) bool {
		for _, n := range names {
			if strings.TrimSpace(f[n]) == "" {
				return false
			}
		}
		return true
	}
}
