package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sovarares/standup-tickets/internal/utils"
)

// User mirrors the Utilizator table. SpectatorID is nil for staff accounts
// created without a spectator profile.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	SpectatorID  *int64
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	// ErrUsernameTaken signals a register attempt with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrContactTaken signals that the email or phone already belongs to a
	// registered spectator.
	ErrContactTaken = errors.New("email or phone already exists")
)

// GetByUsername fetches a user for login. Password verification happens in
// the handler so a bcrypt mismatch and a missing user produce the same
// generic message.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	var u User
	var spectatorID sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT ID_Utilizator, Username, Parola, Rol, ID_Spectator FROM Utilizator WHERE Username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &spectatorID)
	if err != nil {
		return User{}, err
	}
	if spectatorID.Valid {
		u.SpectatorID = &spectatorID.Int64
	}
	return u, nil
}

// Register creates the Spectator row and its Utilizator account in one
// transaction. The uniqueness pre-checks run inside the same transaction,
// and the schema's unique keys close the remaining race: a concurrent
// duplicate surfaces as a 1062 on commit and is mapped to the same sentinel
// the pre-check would have produced. The new account always gets the
// "user" role.
func (r *UserRepo) Register(ctx context.Context, username, password, name, email, phone string, cost int) (int64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var count int
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Utilizator WHERE Username = ?", username).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		err = ErrUsernameTaken
		return 0, err
	}

	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Spectator WHERE Email = ? OR Telefon = ?", email, phone).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		err = ErrContactTaken
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO Spectator (Nume, Email, Telefon) VALUES (?,?,?)", name, email, phone)
	if err != nil {
		if isDuplicate(err) {
			err = ErrContactTaken
		}
		return 0, err
	}
	spectatorID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO Utilizator (Username, Parola, Rol, ID_Spectator) VALUES (?,?,'user',?)",
		username, hash, spectatorID); err != nil {
		if isDuplicate(err) {
			err = ErrUsernameTaken
		}
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		if isDuplicate(err) {
			err = ErrContactTaken
		}
		return 0, err
	}
	return spectatorID, nil
}
