package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ShowSales aggregates ticket count and revenue for one show inside the
// report date range.
type ShowSales struct {
	Title   string
	Tickets int
	Revenue string
}

// OrganizerRevenue is the total revenue across all shows of one organizer.
type OrganizerRevenue struct {
	Name    string
	Revenue string
}

// LoyalSpectator is the spectator holding the most tickets overall.
type LoyalSpectator struct {
	Name    string
	Tickets int
}

// VenueOccupancy carries the raw counts behind the occupancy percentage.
type VenueOccupancy struct {
	Name     string
	Percent  string
	capacity int
	shows    int
	sold     int
}

// RecentShow is one of the latest added shows with its venue.
type RecentShow struct {
	Title string
	Venue string
}

type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// SalesByShow returns per-show ticket count and revenue for shows dated in
// [start, end], only for shows that sold at least one ticket, best sellers
// first. Revenue is price times tickets sold, which the SUM over the joined
// rows yields directly.
func (r *ReportRepo) SalesByShow(ctx context.Context, start, end string) ([]ShowSales, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT T.Titlu, T.Nr, T.Total FROM (
			SELECT s.Titlu AS Titlu, COUNT(b.ID_Bilet) AS Nr, SUM(s.Pret) AS Total
			FROM Spectacol s LEFT JOIN Bilet b ON s.ID_Spectacol = b.ID_Spectacol
			WHERE s.Data BETWEEN ? AND ?
			GROUP BY s.ID_Spectacol, s.Titlu
		) AS T
		WHERE T.Nr > 0
		ORDER BY T.Total DESC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShowSales
	for rows.Next() {
		var s ShowSales
		if err := rows.Scan(&s.Title, &s.Tickets, &s.Revenue); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// RevenueByOrganizer totals revenue per organizer across all their shows,
// keeping only organizers with positive revenue, highest first.
func (r *ReportRepo) RevenueByOrganizer(ctx context.Context) ([]OrganizerRevenue, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT o.Nume, SUM(s.Pret) AS Total
		 FROM Organizator o
		 LEFT JOIN Spectacol s ON o.ID_Organizator = s.ID_Organizator
		 LEFT JOIN Bilet b ON s.ID_Spectacol = b.ID_Spectacol
		 WHERE o.ID_Organizator IN (SELECT ID_Organizator FROM Spectacol WHERE ID_Organizator IS NOT NULL)
		 GROUP BY o.ID_Organizator, o.Nume
		 HAVING SUM(s.Pret) > 0
		 ORDER BY Total DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrganizerRevenue
	for rows.Next() {
		var o OrganizerRevenue
		if err := rows.Scan(&o.Name, &o.Revenue); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

// MostLoyalSpectator returns the spectator with the most tickets, or nil
// when no tickets exist at all. Ties break on the lowest spectator id so
// the result is deterministic.
func (r *ReportRepo) MostLoyalSpectator(ctx context.Context) (*LoyalSpectator, error) {
	var l LoyalSpectator
	err := r.DB.QueryRowContext(ctx,
		`SELECT sp.Nume, COUNT(*) AS Cnt
		 FROM Bilet b JOIN Spectator sp ON b.ID_Spectator = sp.ID_Spectator
		 GROUP BY sp.ID_Spectator, sp.Nume
		 ORDER BY Cnt DESC, sp.ID_Spectator ASC
		 LIMIT 1`).Scan(&l.Name, &l.Tickets)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// VenueOccupancies computes, per venue with at least one show, the ratio of
// tickets sold to total capacity across all its shows. The percentage math
// lives in OccupancyPercent.
func (r *ReportRepo) VenueOccupancies(ctx context.Context) ([]VenueOccupancy, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT l.Nume, l.Capacitate,
			(SELECT COUNT(*) FROM Spectacol s WHERE s.ID_Locatie = l.ID_Locatie) AS NrShow,
			(SELECT COUNT(*) FROM Bilet b JOIN Spectacol s ON b.ID_Spectacol = s.ID_Spectacol
			 WHERE s.ID_Locatie = l.ID_Locatie) AS Vandute
		 FROM Locatie l
		 WHERE l.Capacitate > 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VenueOccupancy
	for rows.Next() {
		var v VenueOccupancy
		if err := rows.Scan(&v.Name, &v.capacity, &v.shows, &v.sold); err != nil {
			return nil, err
		}
		if v.shows == 0 {
			continue // venues without shows are excluded from the report
		}
		v.Percent = fmt.Sprintf("%.2f%%", OccupancyPercent(v.capacity, v.shows, v.sold))
		result = append(result, v)
	}
	return result, rows.Err()
}

// OccupancyPercent is tickets sold over total seating capacity across all
// shows at the venue, as a percentage. Zero capacity or zero shows yields
// zero rather than a division error.
func OccupancyPercent(capacity, shows, sold int) float64 {
	if capacity <= 0 || shows <= 0 {
		return 0
	}
	total := int64(capacity) * int64(shows)
	return float64(sold) / float64(total) * 100
}

// RecentShows lists the n most recently added shows with their venue,
// newest insert first.
func (r *ReportRepo) RecentShows(ctx context.Context, n int) ([]RecentShow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.Titlu, l.Nume
		 FROM Spectacol s JOIN Locatie l ON s.ID_Locatie = l.ID_Locatie
		 ORDER BY s.ID_Spectacol DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RecentShow
	for rows.Next() {
		var s RecentShow
		if err := rows.Scan(&s.Title, &s.Venue); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
