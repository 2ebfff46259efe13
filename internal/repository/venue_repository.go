package repository

import (
	"context"
	"database/sql"
	"strings"
)

// Venue mirrors the Locatie table.
type Venue struct {
	ID       int64
	Name     string
	Address  string
	City     string
	Capacity int
}

type VenueRepo struct{ DB *sql.DB }

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{DB: db} }

var venueSortColumns = map[string]string{
	"ID":         "ID_Locatie",
	"NUME":       "Nume",
	"ADRESA":     "Adresa",
	"ORAS":       "Oras",
	"CAPACITATE": "Capacitate",
}

func (r *VenueRepo) List(ctx context.Context, search, sortBy, sortDir string) ([]Venue, error) {
	query := "SELECT ID_Locatie, Nume, Adresa, Oras, Capacitate FROM Locatie"
	var args []any
	if search != "" {
		query += " WHERE LOWER(Nume) LIKE ? OR LOWER(Adresa) LIKE ? OR LOWER(Oras) LIKE ?"
		pat := "%" + strings.ToLower(search) + "%"
		args = append(args, pat, pat, pat)
	}
	query += orderClause(venueSortColumns, sortBy, sortDir, "Nume")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Venue
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Capacity); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *VenueRepo) Create(ctx context.Context, v Venue) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO Locatie (Nume, Adresa, Oras, Capacitate) VALUES (?,?,?,?)",
		v.Name, v.Address, v.City, v.Capacity)
	return err
}

func (r *VenueRepo) Update(ctx context.Context, v Venue) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE Locatie SET Nume=?, Adresa=?, Oras=?, Capacitate=? WHERE ID_Locatie=?",
		v.Name, v.Address, v.City, v.Capacity, v.ID)
	return err
}

// Delete removes a venue. Shows still pointing at the venue make the
// foreign key refuse the delete, reported as ErrInUse.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM Locatie WHERE ID_Locatie=?", id)
	if isReferenced(err) {
		return ErrInUse
	}
	return err
}
