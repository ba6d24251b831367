package audit

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/saintcloud/saintcloud/internal/metrics"
	"github.com/saintcloud/saintcloud/internal/util/async"
)

// Deleter deletes versions through a Directory.
type Deleter struct {
	dir  Directory
	opts options
}

// NewDeleter returns a Deleter writing to dir.
func NewDeleter(dir Directory, opts ...Option) *Deleter {
	return &Deleter{dir: dir, opts: newOptions(opts)}
}

// DeleteAll deletes every version in refs concurrently and waits for all of
// them. A failed deletion is recorded in the report and does not affect the
// others. Succeeded and Failures keep the order of refs.
func (d *Deleter) DeleteAll(ctx context.Context, refs []VersionRef) DeletionReport {
	logger := logr.FromContextOrDiscard(ctx)

	errs := async.Settle(ctx, len(refs), d.opts.concurrency, func(ctx context.Context, i int) error {
		return d.dir.DeleteVersion(ctx, refs[i])
	})

	report := DeletionReport{Requested: len(refs)}
	for i, err := range errs {
		if err != nil {
			logger.V(1).Info("version deletion failed", "version", refs[i].String(), "error", err.Error())
			metrics.RecordDeletion(metrics.ResultError)
			report.Failures = append(report.Failures, DeletionOutcome{Ref: refs[i], Err: err})
			continue
		}
		metrics.RecordDeletion(metrics.ResultSuccess)
		report.Succeeded = append(report.Succeeded, refs[i])
	}
	report.SuccessCount = len(report.Succeeded)

	return report
}
