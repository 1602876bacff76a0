package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL pipeline definition loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the pipeline definition from path, which may be a single .hcl
// file or a directory searched recursively. All files are merged into one
// body before decoding, so a definition may be split across files.
func (l *Loader) Load(ctx context.Context, path string) (*config.Pipeline, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := findDefinitionFiles(path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .hcl files found at %s", path)
	}
	logger.Debug("Definition files discovered.", "count", len(paths))

	files := make([]*hcl.File, 0, len(paths))
	for _, p := range paths {
		file, diags := l.parser.ParseHCLFile(p)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", p, diags)
		}
		files = append(files, file)
	}

	var r root
	if diags := gohcl.DecodeBody(hcl.MergeFiles(files), nil, &r); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode pipeline definition: %w", diags)
	}

	switch len(r.Pipelines) {
	case 0:
		return nil, fmt.Errorf("no pipeline block found in %s", path)
	case 1:
		// the only supported shape
	default:
		return nil, fmt.Errorf("found %d pipeline blocks in %s, expected exactly one", len(r.Pipelines), path)
	}

	pipeline, err := l.translate(ctx, r.Pipelines[0])
	if err != nil {
		return nil, err
	}
	logger.Debug("Pipeline definition translated into unified model.", "pipeline", pipeline.Name)

	return pipeline, nil
}

// findDefinitionFiles resolves path into the sorted list of .hcl files to
// parse. A file path is returned as-is; a directory is walked recursively.
func findDefinitionFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat definition path: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// WalkDir order is already lexical, but sorting keeps the merge order an
	// explicit guarantee rather than a filesystem detail.
	sort.Strings(files)
	return files, nil
}
