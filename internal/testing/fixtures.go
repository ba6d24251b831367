package testing

import (
	"context"
	"slices"

	"github.com/saintcloud/saintcloud/internal/audit"
)

// Listing levels accepted by DirectoryFixture.WithListError.
const (
	LevelServices  = "services"
	LevelVersions  = "versions"
	LevelInstances = "instances"
)

// DirectoryFixture layers failure scenarios over a MockDirectory.
type DirectoryFixture struct {
	mock *audit.MockDirectory
}

// NewDirectoryFixture wraps dir, typically built with AccountBuilder.
func NewDirectoryFixture(dir *audit.MockDirectory) *DirectoryFixture {
	return &DirectoryFixture{mock: dir}
}

// Mock returns the underlying MockDirectory for custom configuration.
func (f *DirectoryFixture) Mock() *audit.MockDirectory {
	return f.mock
}

// WithDeleteError makes DeleteVersion fail with err for the given version
// IDs. Other deletions succeed.
// Returns the same mock for chaining.
func (f *DirectoryFixture) WithDeleteError(err error, versionIDs ...string) *audit.MockDirectory {
	f.mock.DeleteVersionFunc = func(_ context.Context, ref audit.VersionRef) error {
		if slices.Contains(versionIDs, ref.VersionID) {
			return err
		}
		return nil
	}
	return f.mock
}

// WithListError makes every listing at level fail with err.
func (f *DirectoryFixture) WithListError(level string, err error) *audit.MockDirectory {
	switch level {
	case LevelServices:
		f.mock.ListServicesFunc = func(_ context.Context, _ string) ([]audit.Service, error) {
			return nil, err
		}
	case LevelVersions:
		f.mock.ListVersionsFunc = func(_ context.Context, _, _ string) ([]audit.Version, error) {
			return nil, err
		}
	case LevelInstances:
		f.mock.ListInstancesFunc = func(_ context.Context, _, _, _ string) ([]audit.Instance, error) {
			return nil, err
		}
	}
	return f.mock
}
