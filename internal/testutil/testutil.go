package testutil

import (
	"finbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// TestIntents returns a small banking catalog for classifier tests
func TestIntents() []domain.Intent {
	return []domain.Intent{
		{
			Tag:       domain.IntentBalanceInquiry,
			Patterns:  []string{"узнать баланс", "сколько денег на счете", "покажи баланс счета"},
			Responses: []string{"Проверяю баланс..."},
		},
		{
			Tag:       domain.IntentCardBlock,
			Patterns:  []string{"заблокировать карту", "потерял карту", "украли карту"},
			Responses: []string{"Блокирую карту..."},
		},
		{
			Tag:       domain.IntentExchangeRate,
			Patterns:  []string{"курс валют", "курс доллара", "курс евро"},
			Responses: []string{"Смотрю курсы..."},
		},
		{
			Tag:       "greeting",
			Patterns:  []string{"привет", "здравствуйте", "добрый день"},
			Responses: []string{"Здравствуйте! Чем могу помочь?"},
		},
	}
}
