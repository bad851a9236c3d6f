package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/auth"
	"github.com/impactboard/admin-cli/pkg/client"
	"github.com/impactboard/admin-cli/pkg/config"
	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/metrics"
	"github.com/impactboard/admin-cli/pkg/notify"
	"github.com/impactboard/admin-cli/pkg/output"
	"github.com/impactboard/admin-cli/pkg/prompter"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	verbose     bool
	configPath  string
	outputFmt   string
	showMetrics bool
	assumeYes   bool
)

// errReported is returned when the failure was already shown as a toast.
var errReported = errors.New("action failed")

var rootCmd = &cobra.Command{
	Use:   "impactboard-admin",
	Short: "Impactboard admin CLI - moderate and manage the community",
	Long: `Impactboard admin is a command-line console for the Impactboard
community platform. Review pending submissions, moderate posts, resources,
stories and Q&A, manage members and follow notifications in real time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		logger.Init(logger.Options{
			Level:   config.GetString("log.level"),
			Verbose: verbose,
			File:    config.GetString("log.file"),
		})

		if outputFmt != "" {
			if !output.ValidateOutputFormat(outputFmt) {
				return clierrors.ValidationError("output", "must be one of text, json, table")
			}
			config.Set("output.format", outputFmt)
		}

		client.Init()
		if _, err := newSession(api.Default()).Restore(); err != nil {
			logger.Warn("Could not restore saved session", "error", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		dumpMetrics()
	},
}

// metricsOut receives the --metrics dump.
var metricsOut io.Writer = os.Stderr

func dumpMetrics() {
	if !showMetrics {
		return
	}
	if err := metrics.Dump(metricsOut); err != nil {
		logger.Warn("Failed to dump metrics", "error", err)
	}
}

// execute runs the command tree. Cobra skips PersistentPostRun when a
// command fails, so the metrics are dumped here on that path.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		dumpMetrics()
	}
	return err
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := execute(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprint(os.Stderr, clierrors.FormatError(err))
			if auth.IsSessionError(err) {
				fmt.Fprintln(os.Stderr, "Run 'impactboard-admin auth login' to sign in.")
			}
		}
		os.Exit(1)
	}
}

func newSession(svc *api.Services) *auth.Session {
	return auth.NewSession(svc.Auth, config.GetCredentialsPath(), client.SetAuthToken)
}

// newToasts returns a queue that prints each toast as it is pushed.
func newToasts() *notify.Queue {
	return notify.NewQueue(
		notify.WithTTL(config.GetSeconds("notify.ttl_seconds")),
		notify.WithSink(output.PrintToast),
	)
}

// outcomeError maps an optimistic outcome to the command's exit status.
// Rolled-back actions were already reported by their toast.
func outcomeError(o service.Outcome, what, id string) error {
	switch o {
	case service.OutcomeNoop:
		return clierrors.NotFoundError(what, id)
	case service.OutcomeRolledBack:
		return errReported
	}
	return nil
}

// confirmDelete asks before a destructive action unless --yes was given.
func confirmDelete(what, id string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	ok, err := prompter.PromptConfirm(fmt.Sprintf("Delete %s %s?", what, id))
	if err != nil {
		return false, err
	}
	if !ok {
		output.PrintInfo("Cancelled")
	}
	return ok, nil
}

// pageFlags are the --page and --limit flags shared by list commands.
type pageFlags struct {
	page  int
	limit int
}

func (f *pageFlags) register(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.limit, "limit", defaultLimit, "Results per page")
}

func (f *pageFlags) params() api.ListParams {
	return api.ListParams{Page: f.page, Limit: f.limit}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/impactboard/admin/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "", "Output format: text, json, table (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print request and mutation counters to stderr on exit")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(approvalsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(resourceCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(qnaCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(connectionsCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
