package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"ID":    "s.ID_Spectacol",
		"TITLU": "s.Titlu",
		"DATA":  "s.Data",
	}

	cases := []struct {
		name    string
		sortBy  string
		sortDir string
		want    string
	}{
		{"known column", "TITLU", "ASC", " ORDER BY s.Titlu ASC"},
		{"lowercase key", "titlu", "asc", " ORDER BY s.Titlu ASC"},
		{"descending", "ID", "DESC", " ORDER BY s.ID_Spectacol DESC"},
		{"lowercase desc", "ID", "desc", " ORDER BY s.ID_Spectacol DESC"},
		{"unknown column falls back", "PRET; DROP TABLE Bilet", "ASC", " ORDER BY s.Data ASC"},
		{"empty key falls back", "", "", " ORDER BY s.Data ASC"},
		{"bogus direction is ascending", "TITLU", "sideways", " ORDER BY s.Titlu ASC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderClause(allowed, tc.sortBy, tc.sortDir, "s.Data"))
		})
	}
}
