package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// ErrMissingInstant is returned for absent or empty timestamp values.
var ErrMissingInstant = errors.New("timestamp is missing")

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds lies in the year 5138; 1e11 milliseconds in 1973.
const epochMillisThreshold = 1e11

// instantLayouts are tried in order for string timestamps. Layouts without a
// zone are interpreted in the caller's location.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	domain.DateLayout,
}

// ParseInstant normalizes any supported timestamp representation into a
// time.Time in loc. Supported inputs are time.Time, *time.Time, strings in
// RFC3339 or local date-time layouts, numeric strings, and epoch numbers in
// seconds or milliseconds.
func ParseInstant(v any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	switch x := v.(type) {
	case nil:
		return time.Time{}, ErrMissingInstant
	case time.Time:
		if x.IsZero() {
			return time.Time{}, ErrMissingInstant
		}
		return x.In(loc), nil
	case *time.Time:
		if x == nil {
			return time.Time{}, ErrMissingInstant
		}
		return ParseInstant(*x, loc)
	case string:
		return parseInstantString(x, loc)
	case json.Number:
		return parseInstantString(x.String(), loc)
	case int:
		return fromEpoch(float64(x), loc)
	case int64:
		return fromEpoch(float64(x), loc)
	case float64:
		return fromEpoch(x, loc)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

// ParseDate normalizes v and truncates it to midnight in loc.
func ParseDate(v any, loc *time.Location) (time.Time, error) {
	t, err := ParseInstant(v, loc)
	if err != nil {
		return time.Time{}, err
	}
	return domain.StartOfDay(t), nil
}

func parseInstantString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingInstant
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromEpoch(f, loc)
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func fromEpoch(f float64, loc *time.Location) (time.Time, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, fmt.Errorf("non-finite timestamp %v", f)
	}
	if f <= 0 {
		return time.Time{}, fmt.Errorf("timestamp %v is not after the epoch", f)
	}
	if math.Abs(f) >= epochMillisThreshold {
		return time.UnixMilli(int64(f)).In(loc), nil
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).In(loc), nil
}
