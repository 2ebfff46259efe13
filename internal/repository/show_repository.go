package repository

import (
	"context"
	"database/sql"
	"strings"
)

// ShowRow is one row of the show listing, joined with its venue and
// organizer. Shows keep appearing after their venue or organizer reference
// was cleared, hence the pointer fields.
type ShowRow struct {
	ID          int64
	Title       string
	Date        string // DD/MM/YYYY, display format
	Time        string // HH:MM:SS
	Price       string
	Venue       *string
	Organizer   *string
	VenueID     *int64
	OrganizerID *int64
}

// ShowInput carries validated form fields for insert/update. Date is ISO
// (YYYY-MM-DD) and Time is already normalized to HH:MM:SS.
type ShowInput struct {
	Title       string
	Date        string
	Time        string
	Price       string
	VenueID     int64
	OrganizerID int64
}

// ShowQuery is the listing filter: free-text search plus allow-listed sort.
type ShowQuery struct {
	Search  string
	SortBy  string
	SortDir string
}

type ShowRepo struct{ DB *sql.DB }

func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{DB: db} }

var showSortColumns = map[string]string{
	"ID":          "s.ID_Spectacol",
	"TITLU":       "s.Titlu",
	"DATA":        "s.Data",
	"ORA":         "s.Ora",
	"PRET":        "s.Pret",
	"LOCATIE":     "l.Nume",
	"ORGANIZATOR": "o.Nume",
}

// List returns shows joined with venue and organizer. A non-empty search
// matches the title, venue name or organizer name case-insensitively.
func (r *ShowRepo) List(ctx context.Context, q ShowQuery) ([]ShowRow, error) {
	query := `SELECT s.ID_Spectacol, s.Titlu,
			DATE_FORMAT(s.Data, '%d/%m/%Y'), TIME_FORMAT(s.Ora, '%H:%i:%s'),
			s.Pret, l.Nume, o.Nume, s.ID_Locatie, s.ID_Organizator
		FROM Spectacol s
		LEFT JOIN Locatie l ON s.ID_Locatie = l.ID_Locatie
		LEFT JOIN Organizator o ON s.ID_Organizator = o.ID_Organizator`

	var args []any
	if q.Search != "" {
		query += " WHERE LOWER(s.Titlu) LIKE ? OR LOWER(l.Nume) LIKE ? OR LOWER(o.Nume) LIKE ?"
		pat := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pat, pat, pat)
	}
	query += orderClause(showSortColumns, q.SortBy, q.SortDir, "s.Data")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShowRow
	for rows.Next() {
		var s ShowRow
		var venue, organizer sql.NullString
		var venueID, organizerID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Title, &s.Date, &s.Time, &s.Price,
			&venue, &organizer, &venueID, &organizerID); err != nil {
			return nil, err
		}
		if venue.Valid {
			s.Venue = &venue.String
		}
		if organizer.Valid {
			s.Organizer = &organizer.String
		}
		if venueID.Valid {
			s.VenueID = &venueID.Int64
		}
		if organizerID.Valid {
			s.OrganizerID = &organizerID.Int64
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Create inserts a show. Venue and organizer ids are inserted as given; a
// dangling reference is rejected by the foreign keys and surfaces as a
// storage error for the handler to report.
func (r *ShowRepo) Create(ctx context.Context, in ShowInput) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO Spectacol (Titlu, Data, Ora, Pret, ID_Locatie, ID_Organizator) VALUES (?,?,?,?,?,?)",
		in.Title, in.Date, in.Time, in.Price, in.VenueID, in.OrganizerID)
	return err
}

// Update rewrites all editable fields. A venue or organizer id of zero or
// less clears the reference to NULL instead of being rejected.
func (r *ShowRepo) Update(ctx context.Context, id int64, in ShowInput) error {
	var venueID, organizerID any
	if in.VenueID > 0 {
		venueID = in.VenueID
	}
	if in.OrganizerID > 0 {
		organizerID = in.OrganizerID
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE Spectacol SET Titlu=?, Data=?, Ora=?, Pret=?, ID_Locatie=?, ID_Organizator=? WHERE ID_Spectacol=?",
		in.Title, in.Date, in.Time, in.Price, venueID, organizerID, id)
	return err
}

// Delete removes the show together with its tickets in one transaction so a
// failure never leaves orphaned rows behind.
func (r *ShowRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM Bilet WHERE ID_Spectacol = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM Spectacol WHERE ID_Spectacol = ?", id); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

// ShowAtVenue pairs a show title with a venue name for the side lists on
// the venue page and the report.
type ShowAtVenue struct {
	Venue string
	Title string
	Date  string
}

// UpcomingAtVenues lists the next n shows from today onward with their
// venue, soonest first. Shown on the venues page.
func (r *ShowRepo) UpcomingAtVenues(ctx context.Context, n int) ([]ShowAtVenue, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT l.Nume, s.Titlu, DATE_FORMAT(s.Data, '%d/%m/%Y')
		 FROM Locatie l JOIN Spectacol s ON l.ID_Locatie = s.ID_Locatie
		 WHERE s.Data >= CURDATE()
		 ORDER BY s.Data ASC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShowAtVenue
	for rows.Next() {
		var v ShowAtVenue
		if err := rows.Scan(&v.Venue, &v.Title, &v.Date); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// OrganizerShow pairs an organizer with one of their shows for the side
// list on the organizers page.
type OrganizerShow struct {
	Organizer string
	Title     string
}

// RecentByOrganizer lists the n most recent shows (by show date) with their
// organizer.
func (r *ShowRepo) RecentByOrganizer(ctx context.Context, n int) ([]OrganizerShow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT o.Nume, s.Titlu
		 FROM Organizator o JOIN Spectacol s ON o.ID_Organizator = s.ID_Organizator
		 ORDER BY s.Data DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrganizerShow
	for rows.Next() {
		var v OrganizerShow
		if err := rows.Scan(&v.Organizer, &v.Title); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
