package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// ParseISODurationMinutes converts an ISO-8601 duration such as "PT12H34M56S"
// or "P1DT2H" to whole minutes. Seconds are truncated. An empty string is 0.
func ParseISODurationMinutes(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	// A number must end with a unit designator.
	if strings.IndexAny(s[len(s)-1:], "0123456789.") == 0 {
		return 0, fmt.Errorf("invalid duration %q: missing unit", s)
	}
	d, err := duration.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return int(d.ToTimeDuration() / time.Minute), nil
}
