// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketPurchasedEvent is published after a ticket purchase commits. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type TicketPurchasedEvent struct {
	Code        string `json:"code"`
	ShowID      int64  `json:"show_id"`
	SpectatorID int64  `json:"spectator_id"`
	Username    string `json:"username"`
	PurchasedAt string `json:"purchased_at"`
}
