package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_VerifyClient(t *testing.T) {
	tests := []struct {
		name          string
		clientID      string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedOK    bool
		expectedError bool
	}{
		{
			name:       "known client",
			clientID:   "123456",
			mockRows:   sqlmock.NewRows([]string{"exists"}).AddRow(true),
			expectedOK: true,
		},
		{
			name:       "unknown client",
			clientID:   "654321",
			mockRows:   sqlmock.NewRows([]string{"exists"}).AddRow(false),
			expectedOK: false,
		},
		{
			name:          "query failure",
			clientID:      "123456",
			mockError:     sql.ErrConnDone,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			gw := NewGateway(db)

			query := "SELECT EXISTS\\(SELECT 1 FROM clients WHERE client_id = \\$1\\)"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.clientID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.clientID).WillReturnRows(tt.mockRows)
			}

			ok, err := gw.VerifyClient(context.Background(), tt.clientID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedOK, ok)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGateway_GetBalance(t *testing.T) {
	tests := []struct {
		name            string
		clientID        string
		mockRows        *sqlmock.Rows
		mockError       error
		expectedBalance float64
		expectedError   bool
	}{
		{
			name:            "existing client",
			clientID:        "123456",
			mockRows:        sqlmock.NewRows([]string{"balance"}).AddRow(45678.50),
			expectedBalance: 45678.50,
		},
		{
			name:          "missing client",
			clientID:      "000000",
			mockError:     sql.ErrNoRows,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			gw := NewGateway(db)

			query := "SELECT balance FROM clients WHERE client_id = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.clientID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.clientID).WillReturnRows(tt.mockRows)
			}

			balance, err := gw.GetBalance(context.Background(), tt.clientID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGateway_GetRates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gw := NewGateway(db)

	rows := sqlmock.NewRows([]string{"currency", "rate"}).
		AddRow("CNY", 12.45).
		AddRow("EUR", 98.75).
		AddRow("USD", 90.50)

	mock.ExpectQuery("SELECT currency, rate FROM exchange_rates").WillReturnRows(rows)

	rates, err := gw.GetRates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "CNY: 12.45 руб.\nEUR: 98.75 руб.\nUSD: 90.50 руб.", rates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_GetRates_EmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gw := NewGateway(db)

	mock.ExpectQuery("SELECT currency, rate FROM exchange_rates").
		WillReturnRows(sqlmock.NewRows([]string{"currency", "rate"}))

	_, err = gw.GetRates(context.Background())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_BlockCard(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gw := NewGateway(db)

	mock.ExpectExec("UPDATE clients SET card_blocked = TRUE").
		WithArgs("123456").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = gw.BlockCard(context.Background(), "123456")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_BlockCard_UnknownClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gw := NewGateway(db)

	mock.ExpectExec("UPDATE clients SET card_blocked = TRUE").
		WithArgs("000000").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = gw.BlockCard(context.Background(), "000000")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
