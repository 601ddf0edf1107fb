package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Gateway implements gateway.Gateway on top of the bank's PostgreSQL schema
type Gateway struct {
	db *sql.DB
}

// NewGateway creates a new SQL-backed banking gateway
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: db}
}

// VerifyClient checks the client ID against the clients table
func (g *Gateway) VerifyClient(ctx context.Context, clientID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM clients WHERE client_id = $1)`
	if err := g.db.QueryRowContext(ctx, query, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to verify client: %w", err)
	}
	return exists, nil
}

// GetBalance returns the client's account balance
func (g *Gateway) GetBalance(ctx context.Context, clientID string) (float64, error) {
	var balance float64
	query := `SELECT balance FROM clients WHERE client_id = $1`
	err := g.db.QueryRowContext(ctx, query, clientID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("client %s not found", clientID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// GetRates formats the current rows of the exchange_rates table
func (g *Gateway) GetRates(ctx context.Context) (string, error) {
	query := `SELECT currency, rate FROM exchange_rates ORDER BY currency`
	rows, err := g.db.QueryContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to get exchange rates: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var currency string
		var rate float64
		if err := rows.Scan(&currency, &rate); err != nil {
			return "", fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		lines = append(lines, fmt.Sprintf("%s: %.2f руб.", currency, rate))
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to read exchange rates: %w", err)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("exchange_rates table is empty")
	}

	return strings.Join(lines, "\n"), nil
}

// BlockCard marks the client's card as blocked
func (g *Gateway) BlockCard(ctx context.Context, clientID string) error {
	query := `UPDATE clients SET card_blocked = TRUE WHERE client_id = $1`
	res, err := g.db.ExecContext(ctx, query, clientID)
	if err != nil {
		return fmt.Errorf("failed to block card: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check block result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("client %s not found", clientID)
	}

	return nil
}
