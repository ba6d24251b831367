package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/saintcloud/saintcloud/internal/audit"
)

var generatedAt = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func sampleOrphans() []audit.OrphanCandidate {
	return []audit.OrphanCandidate{
		{
			VersionRef: audit.VersionRef{ProjectID: "alpha", ServiceID: "default", VersionID: "v1"},
			CreateTime: "2026-10-14T12:00:00Z",
			Age:        5 * 24 * time.Hour,
			AgeKnown:   true,
		},
		{
			VersionRef: audit.VersionRef{ProjectID: "alpha", ServiceID: "worker", VersionID: "v7"},
			CreateTime: "garbage",
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	r := New(generatedAt, "alpha", sampleOrphans())

	assert.Equal(t, "alpha", r.ProjectFilter)
	require.Len(t, r.Orphans, 2)
	require.NotNil(t, r.Orphans[0].AgeMillis)
	assert.Equal(t, int64(432000000), *r.Orphans[0].AgeMillis)
	assert.Nil(t, r.Orphans[1].AgeMillis)
	assert.Nil(t, r.Deletion)
}

func TestNew_NoOrphansMarshalsEmptyList(t *testing.T) {
	t.Parallel()
	data, err := New(generatedAt, "", nil).Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "orphans: []")
	assert.NotContains(t, string(data), "projectFilter")
}

func TestSetDeletion(t *testing.T) {
	t.Parallel()
	r := New(generatedAt, "", sampleOrphans())
	r.SetDeletion(audit.DeletionReport{
		Requested:    2,
		SuccessCount: 1,
		Succeeded:    []audit.VersionRef{{ProjectID: "alpha", ServiceID: "default", VersionID: "v1"}},
		Failures: []audit.DeletionOutcome{{
			Ref: audit.VersionRef{ProjectID: "alpha", ServiceID: "worker", VersionID: "v7"},
			Err: errors.New("version is serving traffic"),
		}},
	})

	require.NotNil(t, r.Deletion)
	assert.Equal(t, 2, r.Deletion.Requested)
	assert.Equal(t, 1, r.Deletion.Succeeded)
	assert.Equal(t, []Failure{{Project: "alpha", Service: "worker", Version: "v7", Error: "version is serving traffic"}}, r.Deletion.Failures)
}

func TestSave_LocalFileRoundTrip(t *testing.T) {
	t.Parallel()
	r := New(generatedAt, "alpha", sampleOrphans())
	r.SetDeletion(audit.DeletionReport{Requested: 2, SuccessCount: 2})
	path := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, Save(context.Background(), path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, *r, got)
}

func TestSave_LocalFileError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing-dir", "report.yaml")

	err := Save(context.Background(), path, New(generatedAt, "", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report")
}

func TestSave_InvalidGCSDestination(t *testing.T) {
	t.Parallel()
	err := Save(context.Background(), "gs://bucket-only", New(generatedAt, "", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected gs://bucket/object")
}

func TestParseGCSURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		bucket  string
		object  string
		wantErr bool
	}{
		{in: "gs://audits/saintcloud/2026-10-19.yaml", bucket: "audits", object: "saintcloud/2026-10-19.yaml"},
		{in: "gs://audits/report.yaml", bucket: "audits", object: "report.yaml"},
		{in: "gs://audits", wantErr: true},
		{in: "gs://audits/", wantErr: true},
		{in: "gs:///report.yaml", wantErr: true},
		{in: "gs://audits/dir/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			bucket, object, err := parseGCSURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.object, object)
		})
	}
}
