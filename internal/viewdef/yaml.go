package viewdef

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/recordtable/internal/core"
	"github.com/JonMunkholm/recordtable/internal/datatable"
	"gopkg.in/yaml.v3"
)

// yamlView is the YAML form of one view definition.
type yamlView struct {
	Key             string                   `yaml:"key"`
	Group           string                   `yaml:"group,omitempty"`
	Label           string                   `yaml:"label,omitempty"`
	Description     string                   `yaml:"description,omitempty"`
	Header          string                   `yaml:"header,omitempty"`
	SubHeader       string                   `yaml:"subHeader,omitempty"`
	SequenceNumbers bool                     `yaml:"sequenceNumbers,omitempty"`
	Locale          string                   `yaml:"locale,omitempty"`
	Columns         []datatable.ColumnConfig `yaml:"columns"`
	Source          *yamlSource              `yaml:"source,omitempty"`
}

type yamlSource struct {
	Type    string             `yaml:"type"`
	Path    string             `yaml:"path,omitempty"`
	Query   string             `yaml:"query,omitempty"`
	Records []datatable.Record `yaml:"records,omitempty"`
}

func (l *Loader) loadYAMLFile(path string) ([]core.ViewDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition %s: %w", path, err)
	}

	def, err := l.ParseYAML(path, data)
	if err != nil {
		return nil, err
	}
	return []core.ViewDefinition{def}, nil
}

// ParseYAML decodes one YAML view definition. name is used in error
// messages and as the base for relative source paths.
func (l *Loader) ParseYAML(name string, data []byte) (core.ViewDefinition, error) {
	var v yamlView
	if err := yaml.Unmarshal(data, &v); err != nil {
		return core.ViewDefinition{}, fmt.Errorf("parse definition %s: %w", name, err)
	}

	def := core.ViewDefinition{
		Info: core.ViewInfo{
			Key:         v.Key,
			Group:       v.Group,
			Label:       v.Label,
			Description: v.Description,
		},
		Header:                v.Header,
		SubHeader:             v.SubHeader,
		Columns:               v.Columns,
		IncludeSequenceNumber: v.SequenceNumbers,
		Locale:                v.Locale,
	}

	var src *sourceSpec
	if v.Source != nil {
		src = &sourceSpec{
			Type:    v.Source.Type,
			Path:    v.Source.Path,
			Query:   v.Source.Query,
			Records: v.Source.Records,
		}
	}
	return l.build(name, def, src)
}
