package repository_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sovarares/standup-tickets/internal/database"
	"github.com/sovarares/standup-tickets/internal/repository"
	"github.com/sovarares/standup-tickets/internal/utils"
)

// openTestDB connects to the MySQL instance named by MYSQL_DSN, applies the
// schema and empties every table. Tests are skipped when no DSN is set so
// the suite stays runnable without infrastructure.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set, skipping database tests")
	}
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, database.Migrate(ctx, db))

	// child tables first so the foreign keys do not block the wipe
	for _, table := range []string{"Bilet", "Utilizator", "Spectator", "Spectacol", "Locatie", "Organizator", "Artist"} {
		_, err := db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	return db
}

func insertVenue(t *testing.T, db *sql.DB, name string, capacity int) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO Locatie (Nume, Adresa, Oras, Capacitate) VALUES (?, 'Str. Veche 1', 'Cluj', ?)", name, capacity)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func insertOrganizer(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO Organizator (Nume, Email, Telefon) VALUES (?, ?, '0712345678')", name, name+"@gmail.com")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestRegisterAndLoginLookup(t *testing.T) {
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	spectatorID, err := users.Register(ctx, "ana", "parola", "Ana Pop", "ana@gmail.com", "0712345678", bcrypt.MinCost)
	require.NoError(t, err)
	require.Positive(t, spectatorID)

	u, err := users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, "user", u.Role)
	require.NotNil(t, u.SpectatorID)
	assert.Equal(t, spectatorID, *u.SpectatorID)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "parola"))
	assert.False(t, utils.VerifyPassword(u.PasswordHash, "gresit"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	_, err := users.Register(ctx, "ana", "parola", "Ana Pop", "ana@gmail.com", "0712345678", bcrypt.MinCost)
	require.NoError(t, err)

	_, err = users.Register(ctx, "ana", "alta", "Alta Ana", "alta@gmail.com", "0799999999", bcrypt.MinCost)
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)

	_, err = users.Register(ctx, "ana2", "parola", "Ana Doi", "ana@gmail.com", "0712345678", bcrypt.MinCost)
	assert.ErrorIs(t, err, repository.ErrContactTaken)

	// the failed attempts must not have left partial rows behind
	var spectators int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Spectator").Scan(&spectators))
	assert.Equal(t, 1, spectators)
}

func TestShowCreateSearchAndSort(t *testing.T) {
	db := openTestDB(t)
	shows := repository.NewShowRepo(db)
	ctx := context.Background()

	venueID := insertVenue(t, db, "Sala Mare", 100)
	orgID := insertOrganizer(t, db, "ProComedy")

	err := shows.Create(ctx, repository.ShowInput{
		Title: "Seara de Standup", Date: "2026-10-01", Time: "20:00:00",
		Price: "50.00", VenueID: venueID, OrganizerID: orgID,
	})
	require.NoError(t, err)
	err = shows.Create(ctx, repository.ShowInput{
		Title: "Open Mic", Date: "2026-09-15", Time: "19:30:00",
		Price: "20.00", VenueID: venueID, OrganizerID: orgID,
	})
	require.NoError(t, err)

	// search matches the title case-insensitively
	rows, err := shows.List(ctx, repository.ShowQuery{Search: "standup"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Seara de Standup", rows[0].Title)
	assert.Equal(t, "01/10/2026", rows[0].Date)
	assert.Equal(t, "20:00:00", rows[0].Time)
	require.NotNil(t, rows[0].Venue)
	assert.Equal(t, "Sala Mare", *rows[0].Venue)

	// unknown sort key falls back to the date ordering
	rows, err = shows.List(ctx, repository.ShowQuery{SortBy: "BOGUS", SortDir: "ASC"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Open Mic", rows[0].Title)

	rows, err = shows.List(ctx, repository.ShowQuery{SortBy: "DATA", SortDir: "DESC"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Seara de Standup", rows[0].Title)
}

func TestShowUpdateClearsReferences(t *testing.T) {
	db := openTestDB(t)
	shows := repository.NewShowRepo(db)
	ctx := context.Background()

	venueID := insertVenue(t, db, "Sala Mare", 100)
	orgID := insertOrganizer(t, db, "ProComedy")
	require.NoError(t, shows.Create(ctx, repository.ShowInput{
		Title: "Seara de Standup", Date: "2026-10-01", Time: "20:00:00",
		Price: "50.00", VenueID: venueID, OrganizerID: orgID,
	}))
	var showID int64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT ID_Spectacol FROM Spectacol WHERE Titlu = 'Seara de Standup'").Scan(&showID))

	// a regular edit keeps both references
	require.NoError(t, shows.Update(ctx, showID, repository.ShowInput{
		Title: "Seara de Standup", Date: "2026-10-02", Time: "21:00:00",
		Price: "55.00", VenueID: venueID, OrganizerID: orgID,
	}))
	rows, err := shows.List(ctx, repository.ShowQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "02/10/2026", rows[0].Date)
	assert.Equal(t, "21:00:00", rows[0].Time)
	require.NotNil(t, rows[0].VenueID)
	require.NotNil(t, rows[0].OrganizerID)

	// an id of zero clears the reference to NULL instead of failing
	require.NoError(t, shows.Update(ctx, showID, repository.ShowInput{
		Title: "Seara de Standup", Date: "2026-10-02", Time: "21:00:00",
		Price: "55.00", VenueID: 0, OrganizerID: 0,
	}))
	rows, err = shows.List(ctx, repository.ShowQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1) // the show still lists without its references
	assert.Nil(t, rows[0].VenueID)
	assert.Nil(t, rows[0].OrganizerID)
	assert.Nil(t, rows[0].Venue)
	assert.Nil(t, rows[0].Organizer)
}

func TestDeleteShowRemovesTickets(t *testing.T) {
	db := openTestDB(t)
	shows := repository.NewShowRepo(db)
	tickets := repository.NewTicketRepo(db)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	venueID := insertVenue(t, db, "Sala Mica", 40)
	orgID := insertOrganizer(t, db, "Underground")
	require.NoError(t, shows.Create(ctx, repository.ShowInput{
		Title: "Ultimul Rand", Date: "2026-11-20", Time: "21:00:00",
		Price: "35.00", VenueID: venueID, OrganizerID: orgID,
	}))

	var showID int64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT ID_Spectacol FROM Spectacol WHERE Titlu = 'Ultimul Rand'").Scan(&showID))

	spectatorID, err := users.Register(ctx, "mihai", "parola", "Mihai Ion", "mihai@gmail.com", "0733333333", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, tickets.Buy(ctx, showID, spectatorID, utils.NewTicketCode()))
	n, err := tickets.CountForShow(ctx, showID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, shows.Delete(ctx, showID))

	n, err = tickets.CountForShow(ctx, showID)
	require.NoError(t, err)
	assert.Zero(t, n)
	rows, err := shows.List(ctx, repository.ShowQuery{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTicketListFiltersBySpectator(t *testing.T) {
	db := openTestDB(t)
	shows := repository.NewShowRepo(db)
	tickets := repository.NewTicketRepo(db)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	venueID := insertVenue(t, db, "Club Central", 80)
	orgID := insertOrganizer(t, db, "Central")
	require.NoError(t, shows.Create(ctx, repository.ShowInput{
		Title: "Gala", Date: "2026-12-01", Time: "20:00:00",
		Price: "60.00", VenueID: venueID, OrganizerID: orgID,
	}))
	var showID int64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT ID_Spectacol FROM Spectacol WHERE Titlu = 'Gala'").Scan(&showID))

	first, err := users.Register(ctx, "ana", "parola", "Ana Pop", "ana@gmail.com", "0711111111", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := users.Register(ctx, "dan", "parola", "Dan Rus", "dan@gmail.com", "0722222222", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, tickets.Buy(ctx, showID, first, utils.NewTicketCode()))
	require.NoError(t, tickets.Buy(ctx, showID, first, utils.NewTicketCode()))
	require.NoError(t, tickets.Buy(ctx, showID, second, utils.NewTicketCode()))

	all, err := tickets.List(ctx, repository.TicketQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := tickets.List(ctx, repository.TicketQuery{SpectatorID: &first})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, row := range mine {
		require.NotNil(t, row.Spectator)
		assert.Equal(t, "Ana Pop", *row.Spectator)
	}
}

func TestVenueDeleteStillReferenced(t *testing.T) {
	db := openTestDB(t)
	venues := repository.NewVenueRepo(db)
	shows := repository.NewShowRepo(db)
	ctx := context.Background()

	venueID := insertVenue(t, db, "Teatrul Vechi", 200)
	orgID := insertOrganizer(t, db, "Teatrul")
	require.NoError(t, shows.Create(ctx, repository.ShowInput{
		Title: "Premiera", Date: "2026-10-10", Time: "19:00:00",
		Price: "45.00", VenueID: venueID, OrganizerID: orgID,
	}))

	err := venues.Delete(ctx, venueID)
	assert.ErrorIs(t, err, repository.ErrInUse)

	// the venue still lists after the refused delete
	list, err := venues.List(ctx, "", "", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReportAggregates(t *testing.T) {
	db := openTestDB(t)
	shows := repository.NewShowRepo(db)
	tickets := repository.NewTicketRepo(db)
	users := repository.NewUserRepo(db)
	reports := repository.NewReportRepo(db)
	ctx := context.Background()

	venueID := insertVenue(t, db, "Sala Mare", 100)
	orgID := insertOrganizer(t, db, "ProComedy")
	for _, title := range []string{"Show Unu", "Show Doi"} {
		require.NoError(t, shows.Create(ctx, repository.ShowInput{
			Title: title, Date: "2026-06-01", Time: "20:00:00",
			Price: "50.00", VenueID: venueID, OrganizerID: orgID,
		}))
	}
	var firstID, secondID int64
	require.NoError(t, db.QueryRowContext(ctx, "SELECT ID_Spectacol FROM Spectacol WHERE Titlu='Show Unu'").Scan(&firstID))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT ID_Spectacol FROM Spectacol WHERE Titlu='Show Doi'").Scan(&secondID))

	ana, err := users.Register(ctx, "ana", "parola", "Ana Pop", "ana@gmail.com", "0711111111", bcrypt.MinCost)
	require.NoError(t, err)
	dan, err := users.Register(ctx, "dan", "parola", "Dan Rus", "dan@gmail.com", "0722222222", bcrypt.MinCost)
	require.NoError(t, err)

	// ana buys two tickets, dan one; three total across two shows
	require.NoError(t, tickets.Buy(ctx, firstID, ana, utils.NewTicketCode()))
	require.NoError(t, tickets.Buy(ctx, secondID, ana, utils.NewTicketCode()))
	require.NoError(t, tickets.Buy(ctx, firstID, dan, utils.NewTicketCode()))

	sales, err := reports.SalesByShow(ctx, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Show Unu", sales[0].Title) // two tickets, highest revenue first
	assert.Equal(t, 2, sales[0].Tickets)

	revenue, err := reports.RevenueByOrganizer(ctx)
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	assert.Equal(t, "ProComedy", revenue[0].Name)

	loyal, err := reports.MostLoyalSpectator(ctx)
	require.NoError(t, err)
	require.NotNil(t, loyal)
	assert.Equal(t, "Ana Pop", loyal.Name)
	assert.Equal(t, 2, loyal.Tickets)

	occ, err := reports.VenueOccupancies(ctx)
	require.NoError(t, err)
	require.Len(t, occ, 1)
	// 3 tickets over 100 seats times 2 shows
	assert.Equal(t, "1.50%", occ[0].Percent)
}

func TestMostLoyalSpectatorEmpty(t *testing.T) {
	db := openTestDB(t)
	reports := repository.NewReportRepo(db)

	loyal, err := reports.MostLoyalSpectator(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loyal)
}
