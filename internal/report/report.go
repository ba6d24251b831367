// Package report renders an audit run as YAML and stores it on local disk or
// in Google Cloud Storage.
package report

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/saintcloud/saintcloud/internal/audit"
)

// Report is the machine-readable record of one audit run.
type Report struct {
	GeneratedAt   time.Time `yaml:"generatedAt"`
	ProjectFilter string    `yaml:"projectFilter,omitempty"`
	DryRun        bool      `yaml:"dryRun,omitempty"`
	Orphans       []Orphan  `yaml:"orphans"`
	Deletion      *Deletion `yaml:"deletion,omitempty"`
}

// Orphan is a version without instances. AgeMillis is omitted when the
// creation time could not be parsed.
type Orphan struct {
	Project    string `yaml:"project"`
	Service    string `yaml:"service"`
	Version    string `yaml:"version"`
	CreateTime string `yaml:"createTime,omitempty"`
	AgeMillis  *int64 `yaml:"ageMillis,omitempty"`
}

// Deletion summarises the deletion batch, when one ran.
type Deletion struct {
	Requested int       `yaml:"requested"`
	Succeeded int       `yaml:"succeeded"`
	Failures  []Failure `yaml:"failures,omitempty"`
}

// Failure is one version that could not be deleted.
type Failure struct {
	Project string `yaml:"project"`
	Service string `yaml:"service"`
	Version string `yaml:"version"`
	Error   string `yaml:"error"`
}

// New builds a report for the orphans found at generatedAt.
func New(generatedAt time.Time, projectFilter string, orphans []audit.OrphanCandidate) *Report {
	r := &Report{
		GeneratedAt:   generatedAt.UTC(),
		ProjectFilter: projectFilter,
		Orphans:       make([]Orphan, 0, len(orphans)),
	}
	for _, o := range orphans {
		entry := Orphan{
			Project:    o.ProjectID,
			Service:    o.ServiceID,
			Version:    o.VersionID,
			CreateTime: o.CreateTime,
		}
		if ms, ok := o.AgeMillis(); ok {
			entry.AgeMillis = &ms
		}
		r.Orphans = append(r.Orphans, entry)
	}
	return r
}

// SetDeletion records the outcome of the deletion batch.
func (r *Report) SetDeletion(d audit.DeletionReport) {
	r.Deletion = &Deletion{
		Requested: d.Requested,
		Succeeded: d.SuccessCount,
	}
	for _, f := range d.Failures {
		r.Deletion.Failures = append(r.Deletion.Failures, Failure{
			Project: f.Ref.ProjectID,
			Service: f.Ref.ServiceID,
			Version: f.Ref.VersionID,
			Error:   f.Err.Error(),
		})
	}
}

// Marshal returns the YAML encoding of r.
func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// Save writes r to dest. A dest of the form gs://bucket/object is uploaded to
// Cloud Storage using opts for authentication; anything else is a local path.
func Save(ctx context.Context, dest string, r *Report, opts ...option.ClientOption) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}

	if !strings.HasPrefix(dest, "gs://") {
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", dest, err)
		}
		return nil
	}

	bucket, object, err := parseGCSURL(dest)
	if err != nil {
		return err
	}
	return upload(ctx, bucket, object, data, opts)
}

func upload(ctx context.Context, bucket, object string, data []byte, opts []option.ClientOption) error {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	writer := client.Bucket(bucket).Object(object).NewWriter(ctx)
	writer.ContentType = "application/yaml"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write report to gs://%s/%s: %w", bucket, object, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer for gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}

// parseGCSURL splits gs://bucket/object into its parts.
func parseGCSURL(u string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(u, "gs://")
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return "", "", fmt.Errorf("invalid GCS destination %q: expected gs://bucket/object", u)
	}
	return bucket, object, nil
}
