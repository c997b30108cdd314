package persistence

import (
	"strings"

	"github.com/marketloop/backend/internal/domain/shared"
)

// orderClause builds a safe ORDER BY clause from the filter. The sort field is
// validated against a per-entity whitelist so client input never reaches the
// SQL string unchecked.
func orderClause(filter shared.Filter, allowedFields map[string]bool) string {
	field := "created_at"
	if trimmed := strings.TrimSpace(filter.OrderBy); allowedFields[trimmed] {
		field = trimmed
	}

	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(filter.OrderDir), "asc") {
		dir = "ASC"
	}

	return field + " " + dir
}
