package helpers

import (
	"strconv"
	"strings"
	"time"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseID parses a positive numeric path parameter.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, models.BadRequest("invalid id %q", s)
	}
	return uint(id), nil
}

// ParseEventTime accepts RFC3339 timestamps as well as the date and
// datetime-local formats sent by the website forms. Values without a zone
// are read as UTC.
func ParseEventTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, models.BadRequest("invalid %s format", field)
}
