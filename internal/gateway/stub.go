package gateway

import (
	"context"
	"fmt"
)

// StubGateway is an in-memory banking backend used when no database is
// configured. Any syntactically valid client ID verifies successfully.
type StubGateway struct {
	balance float64
	rates   map[string]float64
}

// NewStubGateway creates a stub with fixed demo data
func NewStubGateway() *StubGateway {
	return &StubGateway{
		balance: 45678.50,
		rates: map[string]float64{
			"USD": 90.50,
			"EUR": 98.75,
			"CNY": 12.45,
		},
	}
}

func (g *StubGateway) VerifyClient(ctx context.Context, clientID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if len(clientID) != 6 {
		return false, nil
	}
	for _, r := range clientID {
		if r < '0' || r > '9' {
			return false, nil
		}
	}
	return true, nil
}

func (g *StubGateway) GetBalance(ctx context.Context, clientID string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return g.balance, nil
}

func (g *StubGateway) GetRates(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"USD: %.2f руб.\nEUR: %.2f руб.\nCNY: %.2f руб.",
		g.rates["USD"], g.rates["EUR"], g.rates["CNY"],
	), nil
}

func (g *StubGateway) BlockCard(ctx context.Context, clientID string) error {
	return ctx.Err()
}
