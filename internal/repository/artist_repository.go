package repository

import (
	"context"
	"database/sql"
	"strings"
)

// Artist mirrors the Artist table. Artists are reference data only; no
// other table points at them in the exposed routes.
type Artist struct {
	ID          int64
	Name        string
	Surname     string
	Nationality string
	Age         int
	Experience  int
}

type ArtistRepo struct{ DB *sql.DB }

func NewArtistRepo(db *sql.DB) *ArtistRepo { return &ArtistRepo{DB: db} }

var artistSortColumns = map[string]string{
	"ID":            "ID_Artist",
	"NUME":          "Nume",
	"PRENUME":       "Prenume",
	"NATIONALITATE": "Nationalitate",
	"VARSTA":        "Varsta",
	"EXPERIENTA":    "Experienta_Ani",
}

func (r *ArtistRepo) List(ctx context.Context, search, sortBy, sortDir string) ([]Artist, error) {
	query := "SELECT ID_Artist, Nume, Prenume, Nationalitate, Varsta, Experienta_Ani FROM Artist"
	var args []any
	if search != "" {
		query += " WHERE LOWER(Nume) LIKE ? OR LOWER(Prenume) LIKE ? OR LOWER(Nationalitate) LIKE ?"
		pat := "%" + strings.ToLower(search) + "%"
		args = append(args, pat, pat, pat)
	}
	query += orderClause(artistSortColumns, sortBy, sortDir, "Nume")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Surname, &a.Nationality, &a.Age, &a.Experience); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *ArtistRepo) Create(ctx context.Context, a Artist) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO Artist (Nume, Prenume, Nationalitate, Varsta, Experienta_Ani) VALUES (?,?,?,?,?)",
		a.Name, a.Surname, a.Nationality, a.Age, a.Experience)
	return err
}

func (r *ArtistRepo) Update(ctx context.Context, a Artist) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE Artist SET Nume=?, Prenume=?, Nationalitate=?, Varsta=?, Experienta_Ani=? WHERE ID_Artist=?",
		a.Name, a.Surname, a.Nationality, a.Age, a.Experience, a.ID)
	return err
}

func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM Artist WHERE ID_Artist=?", id)
	if isReferenced(err) {
		return ErrInUse
	}
	return err
}
