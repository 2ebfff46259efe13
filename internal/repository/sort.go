package repository

import "strings"

// orderClause resolves a user-supplied sort key and direction against an
// allow-list of column identifiers. Unknown keys fall back to the default
// column, so a hostile or stale query string can never raise an error or
// reach the SQL text. Direction is DESC only when asked for explicitly;
// anything else sorts ascending.
func orderClause(allowed map[string]string, sortBy, sortDir, defCol string) string {
	col, ok := allowed[strings.ToUpper(sortBy)]
	if !ok {
		col = defCol
	}
	dir := "ASC"
	if strings.EqualFold(sortDir, "DESC") {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}
