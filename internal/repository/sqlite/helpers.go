package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// expands a single "(?)" placeholder into one per value
func buildINQuery(query string, values []string) (string, []interface{}) {
	if len(values) == 0 {
		return query, []interface{}{}
	}

	placeholders := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}

	placeholder := strings.Join(placeholders, ", ")
	query = strings.Replace(query, "(?)", fmt.Sprintf("(%s)", placeholder), 1)

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapes LIKE wildcards so user text matches literally
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func prefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}
