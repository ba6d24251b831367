package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"google.golang.org/api/option"

	"github.com/saintcloud/saintcloud/internal/audit"
	"github.com/saintcloud/saintcloud/internal/config"
	"github.com/saintcloud/saintcloud/internal/metrics"
	"github.com/saintcloud/saintcloud/internal/platform/appengine"
	"github.com/saintcloud/saintcloud/internal/report"
)

// AuditOptions holds the inputs of the audit command.
type AuditOptions struct {
	ProjectID   string // exact project ID to audit; empty audits every project
	KeyFile     string // service-account key; empty uses Application Default Credentials
	DryRun      bool   // list orphans without prompting or deleting
	ReportPath  string // local path or gs://bucket/object for the YAML report
	MetricsFile string // Prometheus textfile destination

	In     io.Reader
	Out    io.Writer
	Styled bool // render with colors
}

// Factory function variables for audit - can be replaced in tests.
var (
	newDirectory = func(ctx context.Context, keyFile string, s *config.Settings) (audit.Directory, error) {
		return appengine.NewDirectory(ctx, keyFile, appengine.WithSettings(s))
	}

	loadSettings = config.LoadSettings

	now = time.Now

	saveReport = report.Save

	writeMetrics = metrics.WriteTextfile
)

// Audit handles the root command.
//
// It lists every version without instances, asks for confirmation on
// opts.In and deletes the listed versions concurrently. The returned error
// is non-nil when the versions could not be fetched or when at least one
// deletion failed.
func Audit(ctx context.Context, opts AuditOptions) error {
	logger := logr.FromContextOrDiscard(ctx)
	settings := loadSettings()
	out := opts.Out

	dir, err := newDirectory(ctx, opts.KeyFile, settings)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Fprintln(out, "Calling Google APIs...")
	logger.V(1).Info("aggregating versions", "project", opts.ProjectID, "concurrency", settings.Concurrency)

	fetchCtx, cancel := context.WithTimeout(ctx, settings.FetchTimeout)
	tree, err := audit.NewAggregator(dir, audit.WithConcurrency(settings.Concurrency)).Aggregate(fetchCtx, opts.ProjectID)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to fetch App Engine versions: %w", err)
	}

	scannedAt := now()
	orphans := audit.Scan(tree, scannedAt)
	recordOrphans(tree, orphans)

	rep := report.New(scannedAt, opts.ProjectID, orphans)
	rep.DryRun = opts.DryRun
	r := newRenderer(opts.Styled)

	if len(orphans) == 0 {
		fmt.Fprintln(out, "No versions without instance. Nothing to do...")
		return finish(ctx, opts, rep)
	}

	fmt.Fprint(out, r.orphans(orphans))

	if opts.DryRun {
		fmt.Fprintln(out, "Dry run, nothing deleted")
		return finish(ctx, opts, rep)
	}

	answer, err := ask(opts.In, out, "Do you want to delete these versions? (y/N) ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !confirmed(answer) {
		fmt.Fprintln(out, "Ok, nothing deleted")
		return finish(ctx, opts, rep)
	}

	fmt.Fprintln(out, "Deleting versions...")
	deleteCtx, cancel := context.WithTimeout(ctx, settings.DeleteTimeout)
	result := audit.NewDeleter(dir, audit.WithConcurrency(settings.Concurrency)).DeleteAll(deleteCtx, audit.Refs(orphans))
	cancel()

	rep.SetDeletion(result)
	fmt.Fprint(out, r.deletion(result))

	if err := finish(ctx, opts, rep); err != nil {
		return err
	}
	return result.Err()
}

// finish writes the optional report and metrics files.
func finish(ctx context.Context, opts AuditOptions, rep *report.Report) error {
	if opts.ReportPath != "" {
		var clientOpts []option.ClientOption
		if opts.KeyFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(opts.KeyFile))
		}
		if err := saveReport(ctx, opts.ReportPath, rep, clientOpts...); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		logr.FromContextOrDiscard(ctx).V(1).Info("report saved", "path", opts.ReportPath)
	}

	if opts.MetricsFile != "" {
		if err := writeMetrics(opts.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// recordOrphans sets the per-project orphan gauge, including zero for
// projects without orphans.
func recordOrphans(tree *audit.Tree, orphans []audit.OrphanCandidate) {
	counts := make(map[string]int, len(tree.Projects))
	for _, p := range tree.Projects {
		counts[p.ID] = 0
	}
	for _, o := range orphans {
		counts[o.ProjectID]++
	}
	for project, n := range counts {
		metrics.RecordOrphans(project, n)
	}
}
