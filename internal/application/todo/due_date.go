package todo

import (
	"strings"
	"time"

	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

// parseDueAt accepts RFC 3339 timestamps and plain dates (midnight UTC).
// Sub-millisecond digits are dropped so a stored value compares equal to its input.
func parseDueAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Truncate(domain.Precision), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, domerrors.Invalid("Invalid date format")
}

func parseProjectRef(s string) (domain.ProjectID, error) {
	id, err := domain.ParseProjectID(strings.TrimSpace(s))
	if err != nil {
		return domain.ProjectID{}, domerrors.Invalid("Invalid Project ID")
	}
	return id, nil
}
