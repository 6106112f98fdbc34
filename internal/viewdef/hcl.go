package viewdef

import (
	"fmt"
	"os"
	"strings"

	"github.com/JonMunkholm/recordtable/internal/core"
	"github.com/JonMunkholm/recordtable/internal/datatable"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top-level structure of an HCL definitions file.
type hclFile struct {
	Views []*hclView `hcl:"view,block"`
}

type hclView struct {
	Key             string       `hcl:"key,label"`
	Group           *string      `hcl:"group"`
	Label           *string      `hcl:"label"`
	Description     *string      `hcl:"description"`
	Header          *string      `hcl:"header"`
	SubHeader       *string      `hcl:"sub_header"`
	SequenceNumbers *bool        `hcl:"sequence_numbers"`
	Locale          *string      `hcl:"locale"`
	Columns         []*hclColumn `hcl:"column,block"`
	Source          *hclSource   `hcl:"source,block"`
}

type hclColumn struct {
	Label     string `hcl:"label"`
	FieldPath string `hcl:"field_path"`
}

// hclSource supports file and query sources. Inline records are YAML only.
type hclSource struct {
	Type  string  `hcl:"type,label"`
	Path  *string `hcl:"path"`
	Query *string `hcl:"query"`
}

func (l *Loader) loadHCL(parser *hclparse.Parser, path string) ([]core.ViewDefinition, error) {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse definition %s: %w", path, diags)
	}
	return l.decodeHCL(path, file.Body)
}

// ParseHCL decodes the view blocks in src. name is used in error messages
// and as the base for relative source paths.
func (l *Loader) ParseHCL(name string, src []byte) ([]core.ViewDefinition, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse definition %s: %w", name, diags)
	}
	return l.decodeHCL(name, file.Body)
}

func (l *Loader) decodeHCL(name string, body hcl.Body) ([]core.ViewDefinition, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, l.evalContext(), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("parse definition %s: %w", name, diags)
	}

	defs := make([]core.ViewDefinition, 0, len(parsed.Views))
	for _, v := range parsed.Views {
		def := core.ViewDefinition{
			Info: core.ViewInfo{
				Key:         v.Key,
				Group:       deref(v.Group),
				Label:       deref(v.Label),
				Description: deref(v.Description),
			},
			Header:                deref(v.Header),
			SubHeader:             deref(v.SubHeader),
			IncludeSequenceNumber: v.SequenceNumbers != nil && *v.SequenceNumbers,
			Locale:                deref(v.Locale),
		}
		for _, c := range v.Columns {
			def.Columns = append(def.Columns, datatable.ColumnConfig{Label: c.Label, FieldPath: c.FieldPath})
		}

		var src *sourceSpec
		if v.Source != nil {
			if v.Source.Type == SourceInline {
				return nil, fmt.Errorf("%w: %s: view %s: inline sources are only supported in YAML", ErrInvalidDefinition, name, v.Key)
			}
			src = &sourceSpec{
				Type:  v.Source.Type,
				Path:  deref(v.Source.Path),
				Query: deref(v.Source.Query),
			}
		}

		built, err := l.build(name, def, src)
		if err != nil {
			return nil, err
		}
		defs = append(defs, built)
	}
	return defs, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// evalContext exposes environment variables to expressions as env.NAME, so a
// definition can say path = "${env.DATA_DIR}/accounts.json".
func (l *Loader) evalContext() *hcl.EvalContext {
	env := l.Env
	if env == nil {
		env = make(map[string]string)
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok && hclsyntax.ValidIdentifier(k) {
				env[k] = v
			}
		}
	}

	vals := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vals[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vals)},
	}
}
