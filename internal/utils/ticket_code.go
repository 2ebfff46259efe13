package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewTicketCode derives a short ticket code from a random 128-bit UUID:
// the first 8 hex characters, uppercased. Collisions are possible in
// principle; the unique index on Bilet.Cod_Bilet would reject one, which at
// this volume is not worth a retry loop.
func NewTicketCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
