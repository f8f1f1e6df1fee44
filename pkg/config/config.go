// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚨 ErrConfiguration marks a fatal job configuration problem. A run never
// touches a file once this is returned.
var ErrConfiguration = errors.New("invalid job configuration")

// 🏷️ Known base identity constants. The tool rewrites one of two known
// source namespaces; everything below the root segment is what gets renamed.
const (
	// NamespaceRoot is the leading segment shared by source and target
	// namespaces ("com" in "com.whatsapp").
	NamespaceRoot = "com"

	// SourcePackage is the namespace being searched for, without the root.
	SourcePackage = "whatsapp"

	// VariantSuffix is the extra segment distinguishing the Variant build
	// ("w4b" in "com.whatsapp.w4b").
	VariantSuffix = "w4b"

	// DefaultWorkerCount is used when a job does not set its own.
	DefaultWorkerCount = 4
)

// 🎯 SourceLabel identifies which of the two known base identities a job is
// renaming.
type SourceLabel int

const (
	SourceUnknown SourceLabel = iota
	SourcePrimary             // the base application
	SourceVariant             // the business build, with the w4b sub-namespace
)

// String returns a stable lowercase identifier for the label.
func (l SourceLabel) String() string {
	switch l {
	case SourcePrimary:
		return "whatsapp"
	case SourceVariant:
		return "business"
	default:
		return "unknown"
	}
}

// FolderName returns the display name substituted in markup files.
func (l SourceLabel) FolderName() string {
	switch l {
	case SourcePrimary:
		return "WhatsApp"
	case SourceVariant:
		return "WhatsApp Business"
	default:
		return ""
	}
}

// SearchToken returns the default dotted source token ("com.whatsapp"). The
// variant suffix is handled separately by the rule compiler, so both labels
// share the same base token.
func (l SourceLabel) SearchToken() string {
	return NamespaceRoot + "." + SourcePackage
}

// 🎯 ParseSourceLabel maps a config/flag value to a SourceLabel.
func ParseSourceLabel(s string) (SourceLabel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whatsapp", "primary", "1":
		return SourcePrimary, nil
	case "business", "variant", "w4b", "2":
		return SourceVariant, nil
	default:
		return SourceUnknown, errors.Errorf("%w: unknown source label %q", ErrConfiguration, s)
	}
}

// 📦 Job is the immutable input of one rewrite run. The external CLI or
// interactive layer fully populates it before the core is invoked; the core
// never mutates it while a run is in flight.
type Job struct {
	// RootPath is the root of the decompiled tree. Must exist and be a
	// directory before any file is touched.
	RootPath string

	// Source selects the base identity being renamed.
	Source SourceLabel

	// TargetPackage is the new dotted package name, without the namespace
	// root (e.g. "myapp" or "my.app").
	TargetPackage string

	// TargetFolderName is the new display name substituted in markup files.
	TargetFolderName string

	// CustomSearchToken, when set, fully overrides the default source token,
	// including the variant-suffix handling.
	CustomSearchToken string

	// WorkerCount bounds the per-category parallelism. Defaults to
	// DefaultWorkerCount when zero.
	WorkerCount int

	// ProtectedModules are vendor module names that must stay anchored to
	// the original namespace after the rename.
	ProtectedModules []string
}

// TargetPackagePath is the slash-delimited form of TargetPackage. Always
// derived, never independently settable.
func (j *Job) TargetPackagePath() string {
	return strings.ReplaceAll(j.TargetPackage, ".", "/")
}

// 🔍 Validate checks required fields and fills defaults in place. Any error
// wraps ErrConfiguration.
func (j *Job) Validate() error {
	if j.RootPath == "" {
		return errors.Errorf("%w: root path is required", ErrConfiguration)
	}
	info, err := os.Stat(j.RootPath)
	if err != nil {
		return errors.Errorf("%w: root path %q does not exist", ErrConfiguration, j.RootPath)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: root path %q is not a directory", ErrConfiguration, j.RootPath)
	}
	if j.Source != SourcePrimary && j.Source != SourceVariant {
		return errors.Errorf("%w: source label is required", ErrConfiguration)
	}
	if j.TargetPackage == "" {
		return errors.Errorf("%w: target package is required", ErrConfiguration)
	}
	if j.TargetFolderName == "" {
		return errors.Errorf("%w: target folder name is required", ErrConfiguration)
	}

	// Defaults
	if j.WorkerCount <= 0 {
		j.WorkerCount = DefaultWorkerCount
	}
	if j.ProtectedModules == nil {
		j.ProtectedModules = DefaultProtectedModules()
	}

	return nil
}

// 📝 String returns a one-line summary of the job.
func (j *Job) String() string {
	token := j.CustomSearchToken
	if token == "" {
		token = j.Source.SearchToken()
	}
	return fmt.Sprintf("%s -> %s.%s (%s) in %s", token, NamespaceRoot, j.TargetPackage, j.TargetFolderName, j.RootPath)
}
