package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/waclone/pkg/config"
	"github.com/walteh/waclone/pkg/report"
	"github.com/walteh/waclone/pkg/runner"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	flagType          int
	flagMode          int
	flagPackage       string
	flagName          string
	flagSearchPattern string
	flagWorkers       int
	flagConfig        string
	flagDebug         bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waclone [folder]",
		Short: "Clone a decompiled WhatsApp tree by rewriting package names and resources",
		Long: `waclone rewrites package names and namespace-qualified resources across a
decompiled application tree (.smali and .xml files), so the result can be
recompiled as an independent clone. Decompile with apktool first; recompile
and sign afterwards.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().IntVar(&flagType, "type", 0, "WhatsApp type: 1 for WhatsApp, 2 for WhatsApp Business")
	cmd.Flags().IntVar(&flagMode, "mode", 0, "mode: 1 auto, 2 custom, 3 custom with search pattern")
	cmd.Flags().StringVar(&flagPackage, "package", "", "new package name without the leading 'com'")
	cmd.Flags().StringVar(&flagName, "name", "", "new folder display name")
	cmd.Flags().StringVar(&flagSearchPattern, "search-pattern", "", "custom search pattern (mode 3 only)")
	cmd.Flags().IntVar(&flagWorkers, "workers", config.DefaultWorkerCount, "number of worker threads for parallel processing")
	cmd.Flags().StringVar(&flagConfig, "config", "", "job file (.waclone.hcl or .waclone.yaml)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagDebug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter()).Level(level).With().Timestamp().Logger()
}

func run(cmd *cobra.Command, args []string) error {
	logger := setupLogging()
	ctx := logger.WithContext(cmd.Context())

	interactive := isatty.IsTerminal(os.Stdout.Fd())

	job, err := resolveJob(ctx, args, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return err
	}

	if err := job.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return err
	}

	renderJob(job, interactive)

	var sink runner.ProgressSink
	if interactive {
		sink = report.NewPtermSink()
	} else {
		sink = report.NewConsoleSink(os.Stdout, false)
	}

	result, runErr := runner.New(job, sink).Run(ctx)

	if result != nil {
		if interactive {
			if err := report.RenderSummaryTable(result); err != nil {
				report.WriteSummary(os.Stdout, result)
			}
		} else {
			report.WriteSummary(os.Stdout, result)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nProcess interrupted by user")
			return runErr
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", runErr)
		return runErr
	}

	if interactive {
		pterm.Success.Println("All done! Enjoy your cloned WhatsApp.")
	} else {
		logger.Info().Msg("cloning completed successfully")
	}
	return nil
}

// renderJob shows the resolved configuration before the run starts.
func renderJob(job *config.Job, interactive bool) {
	if !interactive {
		fmt.Printf("Configuration: %s\n", job)
		return
	}
	data := pterm.TableData{
		{"Root folder", job.RootPath},
		{"Source", job.Source.FolderName()},
		{"New package name", job.TargetPackage},
		{"New folder name", job.TargetFolderName},
		{"Package path format", job.TargetPackagePath()},
		{"Workers", fmt.Sprintf("%d", job.WorkerCount)},
	}
	if job.CustomSearchToken != "" {
		data = append(data, []string{"Custom search pattern", job.CustomSearchToken})
	}
	if err := pterm.DefaultTable.WithBoxed().WithData(data).Render(); err != nil {
		fmt.Printf("Configuration: %s\n", job)
	}
}
