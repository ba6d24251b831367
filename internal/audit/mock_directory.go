package audit

import (
	"context"
	"sync"
)

// MockDirectory is a Directory for tests. Each method delegates to the
// matching Func field when it is set and returns an empty result otherwise.
// DeleteVersion calls are recorded in Deleted.
type MockDirectory struct {
	ListProjectsFunc  func(ctx context.Context) ([]Project, error)
	ListServicesFunc  func(ctx context.Context, projectID string) ([]Service, error)
	ListVersionsFunc  func(ctx context.Context, projectID, serviceID string) ([]Version, error)
	ListInstancesFunc func(ctx context.Context, projectID, serviceID, versionID string) ([]Instance, error)
	DeleteVersionFunc func(ctx context.Context, ref VersionRef) error

	mu      sync.Mutex
	Deleted []VersionRef
}

var _ Directory = (*MockDirectory)(nil)

// ListProjects implements Directory.
func (m *MockDirectory) ListProjects(ctx context.Context) ([]Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return nil, nil
}

// ListServices implements Directory.
func (m *MockDirectory) ListServices(ctx context.Context, projectID string) ([]Service, error) {
	if m.ListServicesFunc != nil {
		return m.ListServicesFunc(ctx, projectID)
	}
	return nil, nil
}

// ListVersions implements Directory.
func (m *MockDirectory) ListVersions(ctx context.Context, projectID, serviceID string) ([]Version, error) {
	if m.ListVersionsFunc != nil {
		return m.ListVersionsFunc(ctx, projectID, serviceID)
	}
	return nil, nil
}

// ListInstances implements Directory.
func (m *MockDirectory) ListInstances(ctx context.Context, projectID, serviceID, versionID string) ([]Instance, error) {
	if m.ListInstancesFunc != nil {
		return m.ListInstancesFunc(ctx, projectID, serviceID, versionID)
	}
	return nil, nil
}

// DeleteVersion implements Directory.
func (m *MockDirectory) DeleteVersion(ctx context.Context, ref VersionRef) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, ref)
	m.mu.Unlock()
	if m.DeleteVersionFunc != nil {
		return m.DeleteVersionFunc(ctx, ref)
	}
	return nil
}

// DeletedRefs returns a copy of the versions passed to DeleteVersion so far.
func (m *MockDirectory) DeletedRefs() []VersionRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]VersionRef(nil), m.Deleted...)
}
