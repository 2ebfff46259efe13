package database

import (
	"context"
	"database/sql"
)

// Schema statements for the ticketing tables. Column names follow the
// legacy database the external templates were written against. The UNIQUE
// constraints on Utilizator.Username and Spectator(Email, Telefon) back up
// the application-level pre-checks so concurrent registrations cannot both
// slip through.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS Spectator (
		ID_Spectator BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		Nume VARCHAR(100) NOT NULL,
		Email VARCHAR(255) NOT NULL,
		Telefon VARCHAR(10) NOT NULL,
		PRIMARY KEY (ID_Spectator),
		UNIQUE KEY uq_spectator_contact (Email, Telefon)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS Utilizator (
		ID_Utilizator BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		Username VARCHAR(100) NOT NULL,
		Parola VARCHAR(100) NOT NULL,
		Rol VARCHAR(20) NOT NULL DEFAULT 'user',
		ID_Spectator BIGINT UNSIGNED NULL,
		PRIMARY KEY (ID_Utilizator),
		UNIQUE KEY uq_utilizator_username (Username),
		CONSTRAINT fk_utilizator_spectator FOREIGN KEY (ID_Spectator) REFERENCES Spectator (ID_Spectator)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS Locatie (
		ID_Locatie BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		Nume VARCHAR(100) NOT NULL,
		Adresa VARCHAR(255) NOT NULL,
		Oras VARCHAR(100) NOT NULL,
		Capacitate INT NOT NULL DEFAULT 0,
		PRIMARY KEY (ID_Locatie)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS Organizator (
		ID_Organizator BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		Nume VARCHAR(100) NOT NULL,
		Email VARCHAR(255) NOT NULL,
		Telefon VARCHAR(10) NOT NULL,
		PRIMARY KEY (ID_Organizator)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS Artist (
		ID_Artist BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		Nume VARCHAR(100) NOT NULL,
		Prenume VARCHAR(100) NOT NULL,
		Nationalitate VARCHAR(100) NOT NULL,
		Varsta INT NOT NULL DEFAULT 0,
		Experienta_Ani INT NOT NULL DEFAULT 0,
		PRIMARY KEY (ID_Artist)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS Spectacol (
		ID_Spectacol BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		Titlu VARCHAR(255) NOT NULL,
		Data DATE NOT NULL,
		Ora TIME NOT NULL,
		Pret DECIMAL(10,2) NOT NULL DEFAULT 0,
		ID_Locatie BIGINT UNSIGNED NULL,
		ID_Organizator BIGINT UNSIGNED NULL,
		PRIMARY KEY (ID_Spectacol),
		CONSTRAINT fk_spectacol_locatie FOREIGN KEY (ID_Locatie) REFERENCES Locatie (ID_Locatie),
		CONSTRAINT fk_spectacol_organizator FOREIGN KEY (ID_Organizator) REFERENCES Organizator (ID_Organizator)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS Bilet (
		ID_Bilet BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		ID_Spectacol BIGINT UNSIGNED NOT NULL,
		ID_Spectator BIGINT UNSIGNED NOT NULL,
		Data_Cumparare DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		Cod_Bilet CHAR(8) NOT NULL,
		PRIMARY KEY (ID_Bilet),
		UNIQUE KEY uq_bilet_cod (Cod_Bilet),
		CONSTRAINT fk_bilet_spectacol FOREIGN KEY (ID_Spectacol) REFERENCES Spectacol (ID_Spectacol),
		CONSTRAINT fk_bilet_spectator FOREIGN KEY (ID_Spectator) REFERENCES Spectator (ID_Spectator)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables. It runs at startup before the server
// accepts requests.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
