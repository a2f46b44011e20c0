package emit

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pulsedrive/calres/axis"
	"github.com/pulsedrive/calres/caltab"
)

type yamlReport struct {
	Generator yamlGenerator `yaml:"generator"`
	Context   yamlContext   `yaml:"context"`
	Constants []yamlBinding `yaml:"constants"`
}

type yamlGenerator struct {
	Tool    string `yaml:"tool"`
	Version string `yaml:"version"`
	Run     string `yaml:"run"`
	Date    string `yaml:"date"`
	Source  string `yaml:"source"`
}

type yamlContext map[string]string

type yamlBinding struct {
	Name    string            `yaml:"name"`
	Type    string            `yaml:"type"`
	Unit    string            `yaml:"unit,omitempty"`
	Comment string            `yaml:"comment,omitempty"`
	Origin  string            `yaml:"origin,omitempty"`
	Derived bool              `yaml:"derived,omitempty"`
	Value   string            `yaml:"value,omitempty"`
	Values  map[string]string `yaml:"values,omitempty"`
}

// WriteYAML renders the table as a review report: generator identity, the
// resolved context and every binding with its rendered value.
func WriteYAML(w io.Writer, tab *caltab.Table, info Info) error {
	report := yamlReport{
		Generator: yamlGenerator{
			Tool:    info.Tool,
			Version: info.Version,
			Run:     info.RunID,
			Date:    info.Date.Format("2006-01-02 15:04:05 UTC"),
			Source:  info.Source,
		},
		Context: make(yamlContext, len(info.Context)),
	}
	for name, member := range info.Context {
		report.Context[string(name)] = member
	}

	for _, name := range tab.Names() {
		b, _ := tab.Get(name)
		yb := yamlBinding{
			Name:    b.Name,
			Type:    b.Kind.String(),
			Unit:    b.Unit,
			Comment: b.Comment,
			Origin:  b.Origin,
			Derived: b.Derived,
		}
		if b.PerTarget {
			yb.Values = make(map[string]string, len(b.Values))
			for _, t := range axis.Targets() {
				yb.Values[t.String()] = b.At(t).String()
			}
		} else {
			yb.Value = b.Scalar().String()
		}
		report.Constants = append(report.Constants, yb)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
