// Package viewdef loads view definitions from YAML and HCL files.
//
// A definitions directory may mix both formats. Each YAML file holds one
// view; each HCL file holds any number of view blocks:
//
//	view "opportunities" {
//	  group  = "Sales"
//	  header = "Open Opportunities"
//
//	  column {
//	    label      = "Account Name"
//	    field_path = "Account.Name"
//	  }
//
//	  source "json" {
//	    path = "data/opportunities.json"
//	  }
//	}
package viewdef

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JonMunkholm/recordtable/internal/core"
	"github.com/JonMunkholm/recordtable/internal/datatable"
	"github.com/JonMunkholm/recordtable/internal/source"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Source types accepted in definition files.
const (
	SourceJSON     = "json"
	SourceInline   = "inline"
	SourcePostgres = "postgres"
)

var (
	// ErrInvalidDefinition is wrapped by every validation failure.
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrNoDatabase is returned for a postgres source when no database is configured.
	ErrNoDatabase = errors.New("requires a database")
)

// Loader turns definition files into core.ViewDefinition values.
type Loader struct {
	// DB backs postgres sources. Nil rejects definitions that need it.
	DB source.Querier

	// Env is visible to HCL expressions as env.NAME. Nil uses the process
	// environment.
	Env map[string]string
}

// LoadDir loads every *.yaml, *.yml and *.hcl file directly inside dir, in
// file name order.
func (l *Loader) LoadDir(dir string) ([]core.ViewDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read definitions dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".hcl":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		slog.Warn("no view definition files found", "dir", dir)
		return nil, nil
	}

	parser := hclparse.NewParser()
	var defs []core.ViewDefinition
	for _, file := range files {
		var fileDefs []core.ViewDefinition
		if strings.EqualFold(filepath.Ext(file), ".hcl") {
			fileDefs, err = l.loadHCL(parser, file)
		} else {
			fileDefs, err = l.loadYAMLFile(file)
		}
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if seen[def.Info.Key] {
			return nil, fmt.Errorf("%w: view %q defined more than once", ErrInvalidDefinition, def.Info.Key)
		}
		seen[def.Info.Key] = true
	}

	slog.Debug("view definitions loaded", "dir", dir, "files", len(files), "views", len(defs))
	return defs, nil
}

// LoadFile loads the definitions in a single file.
func (l *Loader) LoadFile(path string) ([]core.ViewDefinition, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return l.loadHCL(hclparse.NewParser(), path)
	case ".yaml", ".yml":
		return l.loadYAMLFile(path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported file type", ErrInvalidDefinition, path)
	}
}

// sourceSpec is the format-independent description of a record source.
type sourceSpec struct {
	Type    string
	Path    string
	Query   string
	Records []datatable.Record
}

// build validates a decoded definition and resolves its source. Relative
// JSON paths are taken relative to the definition file.
func (l *Loader) build(file string, def core.ViewDefinition, src *sourceSpec) (core.ViewDefinition, error) {
	key := def.Info.Key
	if key == "" {
		return def, fmt.Errorf("%w: %s: view key is required", ErrInvalidDefinition, file)
	}
	if len(def.Columns) == 0 {
		return def, fmt.Errorf("%w: %s: view %s has no columns", ErrInvalidDefinition, file, key)
	}
	for i, c := range def.Columns {
		if strings.TrimSpace(c.FieldPath) == "" {
			return def, fmt.Errorf("%w: %s: view %s column %d has no field path", ErrInvalidDefinition, file, key, i+1)
		}
	}
	if def.Locale != "" && !strings.EqualFold(datatable.NewCollator(def.Locale).Locale(), def.Locale) {
		slog.Warn("unsupported view locale, using fallback",
			"view", key,
			"locale", def.Locale,
		)
	}

	if src == nil {
		return def, nil
	}

	switch src.Type {
	case SourceJSON:
		if src.Path == "" {
			return def, fmt.Errorf("%w: %s: view %s json source needs a path", ErrInvalidDefinition, file, key)
		}
		path := src.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(file), path)
		}
		def.Source = source.JSONFile{Path: path}
	case SourceInline:
		def.Source = source.Inline{Rows: src.Records}
	case SourcePostgres:
		if src.Query == "" {
			return def, fmt.Errorf("%w: %s: view %s postgres source needs a query", ErrInvalidDefinition, file, key)
		}
		if l.DB == nil {
			return def, fmt.Errorf("view %s postgres source %w", key, ErrNoDatabase)
		}
		def.Source = source.Postgres{DB: l.DB, Query: src.Query}
	default:
		return def, fmt.Errorf("%w: %s: view %s has unknown source type %q", ErrInvalidDefinition, file, key, src.Type)
	}
	return def, nil
}
