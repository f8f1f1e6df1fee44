package main

import (
	"github.com/pterm/pterm"
	"github.com/walteh/waclone/pkg/config"
	"gitlab.com/tozd/go/errors"
)

const (
	optionPrimary = "WhatsApp"
	optionVariant = "WhatsApp Business"

	optionModeAuto   = "Auto - use the default configuration"
	optionModeCustom = "Custom - choose the new package and folder name"
	optionModeAll    = "Custom ALL - also choose the search pattern (clone of a clone)"
)

// jobFromPrompts walks the user through the same choices the flags expose.
func jobFromPrompts(folder string) (*config.Job, error) {
	var err error

	if folder == "" {
		folder, err = pterm.DefaultInteractiveTextInput.
			WithDefaultValue(workingDir()).
			Show("Enter the root folder path")
		if err != nil {
			return nil, errors.Errorf("reading folder prompt: %w", err)
		}
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{optionPrimary, optionVariant}).
		WithDefaultOption(optionPrimary).
		Show("Select which WhatsApp you want to clone")
	if err != nil {
		return nil, errors.Errorf("reading type prompt: %w", err)
	}
	source := config.SourcePrimary
	if choice == optionVariant {
		source = config.SourceVariant
	}

	mode, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{optionModeAuto, optionModeCustom, optionModeAll}).
		WithDefaultOption(optionModeAuto).
		Show("Select mode")
	if err != nil {
		return nil, errors.Errorf("reading mode prompt: %w", err)
	}

	job := &config.Job{
		RootPath:    folder,
		Source:      source,
		WorkerCount: flagWorkers,
	}

	if mode == optionModeAuto {
		job.TargetPackage = defaultPackage(source)
		job.TargetFolderName = source.FolderName()
		return job, nil
	}

	job.TargetPackage, err = pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultPackage(source)).
		Show("Enter the new package name without the leading 'com'")
	if err != nil {
		return nil, errors.Errorf("reading package prompt: %w", err)
	}

	job.TargetFolderName, err = pterm.DefaultInteractiveTextInput.
		WithDefaultValue(source.FolderName()).
		Show("Enter the new folder name")
	if err != nil {
		return nil, errors.Errorf("reading folder name prompt: %w", err)
	}

	if mode == optionModeAll {
		defaultSearch := source.SearchToken()
		if source == config.SourceVariant {
			defaultSearch += "." + config.VariantSuffix
		}
		job.CustomSearchToken, err = pterm.DefaultInteractiveTextInput.
			WithDefaultValue(defaultSearch).
			Show("Enter the custom search pattern (e.g. com.whatsapp)")
		if err != nil {
			return nil, errors.Errorf("reading search pattern prompt: %w", err)
		}
	}

	return job, nil
}
