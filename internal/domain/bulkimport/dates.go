package bulkimport

import (
	"fmt"
	"time"
)

const displayDateLayout = "02/01/2006"

// ParseDisplayDate parses the DD/MM/YYYY display format. There is no locale
// fallback: a malformed or impossible date fails the row.
func ParseDisplayDate(value string) (time.Time, error) {
	parsed, err := time.Parse(displayDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida: %s", value)
	}
	return parsed, nil
}
