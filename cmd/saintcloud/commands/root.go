// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/saintcloud/saintcloud/cmd/saintcloud/handlers"
	"github.com/saintcloud/saintcloud/internal/config"
)

// Root returns the root command for the saintcloud CLI.
//
// Running the root command audits App Engine for versions without
// instances and offers to delete them.
func Root() *cobra.Command {
	var (
		dryRun      bool
		reportPath  string
		metricsFile string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "saintcloud [project-id] [key-file]",
		Short: "Delete App Engine versions that have no instances",
		Long: `saintcloud lists every App Engine version without running instances
and deletes them after confirmation.

Without a project ID every project visible to the credentials is audited.
Without a key file Application Default Credentials are used.

Arguments fall back to environment variables:
  GCLOUD_PROJECT_ID   project to audit
  GCLOUD_KEY_FILE     path to a service account key file

Example:
  saintcloud my-project ./key.json
  saintcloud --dry-run --report gs://audits/saintcloud.yaml`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := newLogger(cmd.ErrOrStderr(), verbose)
			cmd.SetContext(logr.NewContext(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, keyFile := resolveTarget(args)
			return handlers.Audit(cmd.Context(), handlers.AuditOptions{
				ProjectID:   projectID,
				KeyFile:     keyFile,
				DryRun:      dryRun,
				ReportPath:  reportPath,
				MetricsFile: metricsFile,
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
				Styled:      isTerminal(cmd.OutOrStdout()),
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List versions without instances but do not delete them")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML report to a local path or gs://bucket/object")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// resolveTarget returns the project ID and key file from the positional
// arguments, falling back to the environment.
func resolveTarget(args []string) (projectID, keyFile string) {
	projectID = os.Getenv(config.EnvProjectID)
	keyFile = os.Getenv(config.EnvKeyFile)
	if len(args) > 0 {
		projectID = args[0]
	}
	if len(args) > 1 {
		keyFile = args[1]
	}
	return projectID, keyFile
}

func newLogger(w io.Writer, verbose bool) logr.Logger {
	verbosity := 0
	if verbose {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintln(w, prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
