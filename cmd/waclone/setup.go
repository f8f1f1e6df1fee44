package main

import (
	"context"
	"os"

	"github.com/walteh/waclone/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// resolveJob builds the job from, in order of preference: a job file, fully
// specified flags, or the interactive prompts. Flags always override what a
// job file sets.
func resolveJob(ctx context.Context, args []string, interactive bool) (*config.Job, error) {
	folder := ""
	if len(args) > 0 {
		folder = args[0]
	}

	if flagConfig != "" {
		job, err := config.Load(ctx, flagConfig)
		if err != nil {
			return nil, err
		}
		applyOverrides(job, folder)
		return job, nil
	}

	if folder != "" && flagType != 0 && flagMode != 0 {
		return jobFromFlags(folder)
	}

	if !interactive {
		return nil, errors.Errorf("%w: folder, --type and --mode are required when not running interactively", config.ErrConfiguration)
	}
	return jobFromPrompts(folder)
}

// applyOverrides layers command-line values over a file-loaded job.
func applyOverrides(job *config.Job, folder string) {
	if folder != "" {
		job.RootPath = folder
	}
	if flagPackage != "" {
		job.TargetPackage = flagPackage
	}
	if flagName != "" {
		job.TargetFolderName = flagName
	}
	if flagSearchPattern != "" {
		job.CustomSearchToken = flagSearchPattern
	}
	if flagWorkers > 0 {
		job.WorkerCount = flagWorkers
	}
}

// jobFromFlags mirrors the argument-driven setup: --type picks the source
// identity, --mode picks how much gets customized.
func jobFromFlags(folder string) (*config.Job, error) {
	var source config.SourceLabel
	switch flagType {
	case 1:
		source = config.SourcePrimary
	case 2:
		source = config.SourceVariant
	default:
		return nil, errors.Errorf("%w: --type must be 1 (WhatsApp) or 2 (WhatsApp Business)", config.ErrConfiguration)
	}

	job := &config.Job{
		RootPath:    folder,
		Source:      source,
		WorkerCount: flagWorkers,
	}

	switch flagMode {
	case 1:
		job.TargetPackage = defaultPackage(source)
		job.TargetFolderName = source.FolderName()
	case 2:
		if flagPackage == "" || flagName == "" {
			return nil, errors.Errorf("%w: --package and --name are required with --mode 2", config.ErrConfiguration)
		}
		job.TargetPackage = flagPackage
		job.TargetFolderName = flagName
	case 3:
		if flagPackage == "" || flagName == "" || flagSearchPattern == "" {
			return nil, errors.Errorf("%w: --package, --name and --search-pattern are required with --mode 3", config.ErrConfiguration)
		}
		job.TargetPackage = flagPackage
		job.TargetFolderName = flagName
		job.CustomSearchToken = flagSearchPattern
	default:
		return nil, errors.Errorf("%w: --mode must be 1 (auto), 2 (custom) or 3 (custom with search pattern)", config.ErrConfiguration)
	}

	return job, nil
}

// defaultPackage returns the auto-mode target package for a source label.
func defaultPackage(source config.SourceLabel) string {
	if source == config.SourceVariant {
		return config.SourcePackage + "." + config.VariantSuffix
	}
	return config.SourcePackage
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
