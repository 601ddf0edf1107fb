package testutil

import (
	"context"

	"finbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock for gateway.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) VerifyClient(ctx context.Context, clientID string) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) GetBalance(ctx context.Context, clientID string) (float64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockGateway) GetRates(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) BlockCard(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// MockClassifier is a mock for classifier.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Predict(ctx context.Context, text string) (domain.Prediction, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.Prediction), args.Error(1)
}

func (m *MockClassifier) ResponseFor(tag string) string {
	args := m.Called(tag)
	return args.String(0)
}

func (m *MockClassifier) Tags() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}
