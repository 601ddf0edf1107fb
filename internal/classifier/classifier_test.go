package classifier

import (
	"context"
	"testing"

	"finbot/internal/domain"
	"finbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrained(t *testing.T) *NaiveBayes {
	t.Helper()

	cls := NewNaiveBayes(testutil.TestIntents(), testutil.NewTestLogger())
	require.NoError(t, cls.Train())
	return cls
}

func TestNaiveBayes_Train_EmptyCatalog(t *testing.T) {
	cls := NewNaiveBayes(nil, testutil.NewTestLogger())
	assert.Error(t, cls.Train())
}

func TestNaiveBayes_Predict_NotTrained(t *testing.T) {
	cls := NewNaiveBayes(testutil.TestIntents(), testutil.NewTestLogger())

	_, err := cls.Predict(context.Background(), "заблокировать карту")

	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestNaiveBayes_Predict(t *testing.T) {
	cls := newTrained(t)

	tests := []struct {
		name        string
		text        string
		expectedTag string
	}{
		{
			name:        "card block",
			text:        "хочу заблокировать карту",
			expectedTag: domain.IntentCardBlock,
		},
		{
			name:        "balance inquiry",
			text:        "сколько денег на счете",
			expectedTag: domain.IntentBalanceInquiry,
		},
		{
			name:        "exchange rate",
			text:        "какой курс доллара",
			expectedTag: domain.IntentExchangeRate,
		},
		{
			name:        "greeting",
			text:        "здравствуйте, добрый день",
			expectedTag: "greeting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prediction, err := cls.Predict(context.Background(), tt.text)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedTag, prediction.Tag)
			assert.Greater(t, prediction.Confidence, 0.4)
			assert.LessOrEqual(t, prediction.Confidence, 1.0)
		})
	}
}

func TestNaiveBayes_Predict_NoKnownTokens(t *testing.T) {
	cls := newTrained(t)

	prediction, err := cls.Predict(context.Background(), "qwertyuiop asdfgh")

	assert.ErrorIs(t, err, ErrNoTokens)
	assert.Equal(t, domain.IntentUnknown, prediction.Tag)
	assert.Zero(t, prediction.Confidence)
}

func TestNaiveBayes_Predict_CancelledContext(t *testing.T) {
	cls := newTrained(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cls.Predict(ctx, "привет")

	assert.Error(t, err)
}

func TestNaiveBayes_ResponseFor(t *testing.T) {
	cls := newTrained(t)

	assert.Equal(t, "Здравствуйте! Чем могу помочь?", cls.ResponseFor("greeting"))
	assert.Equal(t, fallbackResponse, cls.ResponseFor("no_such_tag"))
}

func TestNaiveBayes_Tags(t *testing.T) {
	cls := newTrained(t)

	tags := cls.Tags()

	assert.Len(t, tags, 4)
	assert.Contains(t, tags, domain.IntentCardBlock)
	assert.Contains(t, tags, domain.IntentBalanceInquiry)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "punctuation stripped",
			text:     "Привет, бот!",
			expected: []string{"привет", "бот"},
		},
		{
			name:     "digits kept",
			text:     "карта 1234",
			expected: []string{"карта", "1234"},
		},
		{
			name:     "empty input",
			text:     "  ...  ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(tt.expected) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
