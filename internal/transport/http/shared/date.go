package shared

import (
	"fmt"
	"time"
)

var payloadDateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate reads the date formats JSON payloads carry. The admin forms send
// plain YYYY-MM-DD; RFC3339 is tolerated for API clients. CSV import dates
// are DD/MM/YYYY and handled by the bulkimport package instead.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range payloadDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", value)
}
