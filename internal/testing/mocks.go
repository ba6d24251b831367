package testing

import (
	"context"

	"github.com/stretchr/testify/mock"
	"google.golang.org/api/option"

	"github.com/saintcloud/saintcloud/internal/report"
)

// MockOutputs is a mock for the report and metrics writers of the audit
// command. Save records the destination, the report and the number of
// client options.
type MockOutputs struct {
	mock.Mock
}

// Save records a report upload.
func (m *MockOutputs) Save(_ context.Context, dest string, r *report.Report, opts ...option.ClientOption) error {
	args := m.Called(dest, r, len(opts))
	return args.Error(0)
}

// WriteMetrics records a metrics export.
func (m *MockOutputs) WriteMetrics(path string) error {
	return m.Called(path).Error(0)
}
