package audit

import (
	"context"
	"errors"
)

// ErrNotFound is matched with errors.Is by Directory implementations to
// report that a project, service or version no longer exists.
var ErrNotFound = errors.New("not found")

// Directory lists and deletes the resources of an App Engine account.
type Directory interface {
	ListProjects(ctx context.Context) ([]Project, error)
	ListServices(ctx context.Context, projectID string) ([]Service, error)
	ListVersions(ctx context.Context, projectID, serviceID string) ([]Version, error)
	ListInstances(ctx context.Context, projectID, serviceID, versionID string) ([]Instance, error)
	DeleteVersion(ctx context.Context, ref VersionRef) error
}

type options struct {
	concurrency int
}

// Option configures an Aggregator or a Deleter.
type Option func(*options)

// WithConcurrency bounds the number of in-flight requests per stage or batch.
// Zero or less means unbounded.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
