package appengine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"
	gae "google.golang.org/api/appengine/v1"
	crm "google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"

	"github.com/saintcloud/saintcloud/internal/audit"
	"github.com/saintcloud/saintcloud/internal/config"
	"github.com/saintcloud/saintcloud/internal/metrics"
	"github.com/saintcloud/saintcloud/internal/util/retry"
)

// Scopes requested for the App Engine Admin and Resource Manager APIs.
var Scopes = []string{
	"https://www.googleapis.com/auth/appengine.admin",
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/cloud-platform.read-only",
}

// Directory implements audit.Directory using the Google APIs.
type Directory struct {
	apps     *gae.APIService
	projects *crm.Service
	limiter  *rate.Limiter
	settings *config.Settings
}

var _ audit.Directory = (*Directory)(nil)

type directoryConfig struct {
	settings      *config.Settings
	clientOptions []option.ClientOption
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*directoryConfig)

// WithSettings sets the rate limit and retry policy.
func WithSettings(s *config.Settings) DirectoryOption {
	return func(c *directoryConfig) {
		c.settings = s
	}
}

// WithClientOptions appends options passed to both Google API clients
// (useful for testing against a local endpoint).
func WithClientOptions(opts ...option.ClientOption) DirectoryOption {
	return func(c *directoryConfig) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// NewDirectory authenticates and builds the API clients. keyFile is the
// path to a service-account JSON key; when empty, Application Default
// Credentials are used.
func NewDirectory(ctx context.Context, keyFile string, opts ...DirectoryOption) (*Directory, error) {
	cfg := &directoryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.settings == nil {
		cfg.settings = config.LoadSettings()
	}

	clientOpts := []option.ClientOption{option.WithScopes(Scopes...)}
	if keyFile != "" {
		if _, err := os.Stat(keyFile); err != nil {
			return nil, fmt.Errorf("service account key not found at path %s: %w", keyFile, err)
		}
		clientOpts = append(clientOpts, option.WithCredentialsFile(keyFile))
	}
	clientOpts = append(clientOpts, cfg.clientOptions...)

	apps, err := gae.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create App Engine client: %w", err)
	}
	projects, err := crm.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Resource Manager client: %w", err)
	}

	return &Directory{
		apps:     apps,
		projects: projects,
		limiter:  rate.NewLimiter(rate.Limit(cfg.settings.RateLimit), cfg.settings.RateBurst),
		settings: cfg.settings,
	}, nil
}

// ListProjects implements audit.Directory.
func (d *Directory) ListProjects(ctx context.Context) ([]audit.Project, error) {
	var projects []audit.Project
	err := d.call(ctx, "projects.list", func(ctx context.Context) error {
		projects = projects[:0]
		return d.projects.Projects.List().Pages(ctx, func(resp *crm.ListProjectsResponse) error {
			for _, p := range resp.Projects {
				projects = append(projects, audit.Project{ID: p.ProjectId})
			}
			return nil
		})
	})
	return projects, err
}

// ListServices implements audit.Directory.
func (d *Directory) ListServices(ctx context.Context, projectID string) ([]audit.Service, error) {
	var services []audit.Service
	err := d.call(ctx, "apps.services.list", func(ctx context.Context) error {
		services = services[:0]
		return d.apps.Apps.Services.List(projectID).Pages(ctx, func(resp *gae.ListServicesResponse) error {
			for _, s := range resp.Services {
				services = append(services, audit.Service{ID: s.Id})
			}
			return nil
		})
	})
	return services, err
}

// ListVersions implements audit.Directory.
func (d *Directory) ListVersions(ctx context.Context, projectID, serviceID string) ([]audit.Version, error) {
	var versions []audit.Version
	err := d.call(ctx, "apps.services.versions.list", func(ctx context.Context) error {
		versions = versions[:0]
		return d.apps.Apps.Services.Versions.List(projectID, serviceID).Pages(ctx, func(resp *gae.ListVersionsResponse) error {
			for _, v := range resp.Versions {
				versions = append(versions, audit.Version{ID: v.Id, CreateTime: v.CreateTime})
			}
			return nil
		})
	})
	return versions, err
}

// ListInstances implements audit.Directory.
func (d *Directory) ListInstances(ctx context.Context, projectID, serviceID, versionID string) ([]audit.Instance, error) {
	var instances []audit.Instance
	err := d.call(ctx, "apps.services.versions.instances.list", func(ctx context.Context) error {
		instances = instances[:0]
		return d.apps.Apps.Services.Versions.Instances.List(projectID, serviceID, versionID).Pages(ctx, func(resp *gae.ListInstancesResponse) error {
			for _, i := range resp.Instances {
				instances = append(instances, audit.Instance{ID: i.Id})
			}
			return nil
		})
	})
	return instances, err
}

// DeleteVersion implements audit.Directory. It returns once the API has
// accepted the request; the resulting long-running operation is not awaited.
//
// A 404 on a retried attempt means an earlier attempt that reported a
// server error was accepted after all, so it counts as deleted.
func (d *Directory) DeleteVersion(ctx context.Context, ref audit.VersionRef) error {
	attempts := 0
	err := d.call(ctx, "apps.services.versions.delete", func(ctx context.Context) error {
		attempts++
		_, err := d.apps.Apps.Services.Versions.Delete(ref.ProjectID, ref.ServiceID, ref.VersionID).Context(ctx).Do()
		return err
	})
	if attempts > 1 && errors.Is(err, audit.ErrNotFound) {
		logr.FromContextOrDiscard(ctx).V(1).Info("version gone after retried delete, treating as deleted",
			"version", ref.String(), "attempts", attempts)
		return nil
	}
	return err
}

// call runs one API operation under the rate limiter and the retry policy.
// 404s come back wrapped in audit.ErrNotFound. Only rate limiting and
// server-side errors are retried.
func (d *Directory) call(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	logger := logr.FromContextOrDiscard(ctx)

	return retry.Do(ctx, func(ctx context.Context) error {
		if err := d.limiter.Wait(ctx); err != nil {
			return retry.Fatal(err)
		}

		start := time.Now()
		err := fn(ctx)
		switch {
		case err == nil:
			metrics.RecordAPICall(operation, metrics.ResultSuccess, time.Since(start))
			return nil
		case isNotFound(err):
			metrics.RecordAPICall(operation, metrics.ResultNotFound, time.Since(start))
			return retry.Fatal(fmt.Errorf("%w: %w", audit.ErrNotFound, err))
		default:
			metrics.RecordAPICall(operation, metrics.ResultError, time.Since(start))
			return err
		}
	},
		retry.WithMaxRetries(d.settings.RetryMaxAttempts),
		retry.WithInitialDelay(d.settings.RetryInitialDelay),
		retry.WithRetryIf(isRetryable),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.V(1).Info("retrying Google API call",
				"operation", operation, "attempt", attempt, "delay", delay.String(), "error", err.Error())
		}),
	)
}
