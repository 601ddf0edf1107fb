package gateway

import "context"

// Gateway is the boundary to the banking backend. All calls are
// potentially I/O-bound and honor the context deadline.
type Gateway interface {
	// VerifyClient reports whether the 6-digit client ID belongs to a known client
	VerifyClient(ctx context.Context, clientID string) (bool, error)
	// GetBalance returns the account balance in roubles
	GetBalance(ctx context.Context, clientID string) (float64, error)
	// GetRates returns a formatted exchange rate table
	GetRates(ctx context.Context) (string, error)
	// BlockCard blocks the client's card
	BlockCard(ctx context.Context, clientID string) error
}
