package mocks

import (
	"context"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockSuiteSource is a mock implementation of ports.SuiteSource
type MockSuiteSource struct {
	mock.Mock
}

func (m *MockSuiteSource) Scheme() string {
	return m.Called().String(0)
}

func (m *MockSuiteSource) Load(ctx context.Context, location string) (domain.Suite, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(domain.Suite), args.Error(1)
}

// MockTransport is a mock implementation of ports.Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, tc domain.TestCaseContext, body string) (domain.Response, error) {
	args := m.Called(ctx, tc, body)
	return args.Get(0).(domain.Response), args.Error(1)
}

// MockReporter is a mock implementation of ports.Reporter
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, results []domain.CaseResult) error {
	return m.Called(ctx, results).Error(0)
}

// MockMetrics is a mock implementation of ports.Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) Observe(result domain.CaseResult) {
	m.Called(result)
}
