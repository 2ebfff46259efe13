package repository

import (
	"context"
	"database/sql"
	"strings"
)

// Organizer mirrors the Organizator table.
type Organizer struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

type OrganizerRepo struct{ DB *sql.DB }

func NewOrganizerRepo(db *sql.DB) *OrganizerRepo { return &OrganizerRepo{DB: db} }

var organizerSortColumns = map[string]string{
	"ID":      "ID_Organizator",
	"NUME":    "Nume",
	"EMAIL":   "Email",
	"TELEFON": "Telefon",
}

func (r *OrganizerRepo) List(ctx context.Context, search, sortBy, sortDir string) ([]Organizer, error) {
	query := "SELECT ID_Organizator, Nume, Email, Telefon FROM Organizator"
	var args []any
	if search != "" {
		query += " WHERE LOWER(Nume) LIKE ? OR LOWER(Email) LIKE ? OR LOWER(Telefon) LIKE ?"
		pat := "%" + strings.ToLower(search) + "%"
		args = append(args, pat, pat, pat)
	}
	query += orderClause(organizerSortColumns, sortBy, sortDir, "Nume")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Organizer
	for rows.Next() {
		var o Organizer
		if err := rows.Scan(&o.ID, &o.Name, &o.Email, &o.Phone); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *OrganizerRepo) Create(ctx context.Context, o Organizer) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO Organizator (Nume, Email, Telefon) VALUES (?,?,?)",
		o.Name, o.Email, o.Phone)
	return err
}

func (r *OrganizerRepo) Update(ctx context.Context, o Organizer) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE Organizator SET Nume=?, Email=?, Telefon=? WHERE ID_Organizator=?",
		o.Name, o.Email, o.Phone, o.ID)
	return err
}

// Delete removes an organizer. Shows still pointing at the organizer make
// the foreign key refuse the delete, reported as ErrInUse.
func (r *OrganizerRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM Organizator WHERE ID_Organizator=?", id)
	if isReferenced(err) {
		return ErrInUse
	}
	return err
}
