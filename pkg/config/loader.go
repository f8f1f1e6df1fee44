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
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for job file parsers.
type Parser interface {
	// 📝 Parse parses a job from bytes
	Parse(ctx context.Context, data []byte) (*Job, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📄 fileJob is the on-disk shape of a job, shared by the YAML and HCL
// parsers. Flags layered on top by the CLI override whatever is set here.
type fileJob struct {
	Root             string   `yaml:"root" hcl:"root,optional"`
	Source           string   `yaml:"source" hcl:"source"`
	Package          string   `yaml:"package" hcl:"package"`
	FolderName       string   `yaml:"folder_name" hcl:"folder_name"`
	SearchPattern    string   `yaml:"search_pattern,omitempty" hcl:"search_pattern,optional"`
	Workers          int      `yaml:"workers,omitempty" hcl:"workers,optional"`
	ProtectedModules []string `yaml:"protected_modules,omitempty" hcl:"protected_modules,optional"`
}

// toJob converts the file shape into a Job. Root existence is not checked
// here; that stays with Job.Validate so flag overrides can apply first.
func (f *fileJob) toJob() (*Job, error) {
	source, err := ParseSourceLabel(f.Source)
	if err != nil {
		return nil, err
	}
	return &Job{
		RootPath:          f.Root,
		Source:            source,
		TargetPackage:     f.Package,
		TargetFolderName:  f.FolderName,
		CustomSearchToken: f.SearchPattern,
		WorkerCount:       f.Workers,
		ProtectedModules:  f.ProtectedModules,
	}, nil
}

// 🎯 Load loads a job from a file, picking a parser by extension.
func Load(ctx context.Context, path string) (*Job, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading job file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading job file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	job, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing job file: %w", err)
	}

	return job, nil
}
