package repository

import (
	"context"
	"database/sql"
)

// TicketRow is one row of the ticket listing, joined with show and
// spectator. The joined names are pointers because the joins are LEFT:
// a ticket outlives neither, but the legacy data did contain orphans.
type TicketRow struct {
	ID          int64
	ShowTitle   *string
	Spectator   *string
	PurchasedAt string // DD/MM/YYYY HH:MM, display format
	Code        string
}

// TicketQuery filters the listing. SpectatorID nil means all tickets
// (admin view); otherwise only that spectator's.
type TicketQuery struct {
	SpectatorID *int64
	SortBy      string
	SortDir     string
}

// RecentTicket feeds the admin side list of latest purchases.
type RecentTicket struct {
	Code      string
	ShowTitle string
	Spectator string
}

type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

var ticketSortColumns = map[string]string{
	"ID":        "b.ID_Bilet",
	"TITLU":     "s.Titlu",
	"SPECTATOR": "sp.Nume",
	"DATA":      "b.Data_Cumparare",
	"COD":       "b.Cod_Bilet",
}

// Buy inserts a ticket for the given show and spectator. The purchase
// timestamp is assigned by the database at insert time.
func (r *TicketRepo) Buy(ctx context.Context, showID, spectatorID int64, code string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO Bilet (ID_Spectacol, ID_Spectator, Data_Cumparare, Cod_Bilet) VALUES (?, ?, CURRENT_TIMESTAMP, ?)",
		showID, spectatorID, code)
	return err
}

// List returns tickets joined with their show and spectator, optionally
// restricted to one spectator.
func (r *TicketRepo) List(ctx context.Context, q TicketQuery) ([]TicketRow, error) {
	query := `SELECT b.ID_Bilet, s.Titlu, sp.Nume,
			DATE_FORMAT(b.Data_Cumparare, '%d/%m/%Y %H:%i'), b.Cod_Bilet
		FROM Bilet b
		LEFT JOIN Spectacol s ON b.ID_Spectacol = s.ID_Spectacol
		LEFT JOIN Spectator sp ON b.ID_Spectator = sp.ID_Spectator`

	var args []any
	if q.SpectatorID != nil {
		query += " WHERE b.ID_Spectator = ?"
		args = append(args, *q.SpectatorID)
	}
	query += orderClause(ticketSortColumns, q.SortBy, q.SortDir, "b.Data_Cumparare")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TicketRow
	for rows.Next() {
		var t TicketRow
		var title, spectator sql.NullString
		if err := rows.Scan(&t.ID, &title, &spectator, &t.PurchasedAt, &t.Code); err != nil {
			return nil, err
		}
		if title.Valid {
			t.ShowTitle = &title.String
		}
		if spectator.Valid {
			t.Spectator = &spectator.String
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Recent returns the n most recently purchased tickets for the admin side
// list.
func (r *TicketRepo) Recent(ctx context.Context, n int) ([]RecentTicket, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.Cod_Bilet, s.Titlu, sp.Nume
		 FROM Bilet b
		 JOIN Spectacol s ON b.ID_Spectacol = s.ID_Spectacol
		 JOIN Spectator sp ON b.ID_Spectator = sp.ID_Spectator
		 ORDER BY b.Data_Cumparare DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RecentTicket
	for rows.Next() {
		var t RecentTicket
		if err := rows.Scan(&t.Code, &t.ShowTitle, &t.Spectator); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// CountForShow returns the number of tickets referencing a show. Used by
// tests and the report.
func (r *TicketRepo) CountForShow(ctx context.Context, showID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Bilet WHERE ID_Spectacol = ?", showID).Scan(&n)
	return n, err
}
