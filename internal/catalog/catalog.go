// Package catalog loads the static technology catalog that drives a run.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/devpulse/devpulse/schema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogFile is the on-disk layout of a catalog document.
type catalogFile struct {
	Technologies []schema.Technology `yaml:"technologies"`
}

// Load reads the catalog from path, or the embedded default catalog when
// path is empty. The catalog is immutable for the lifetime of a run.
func Load(path string) ([]schema.Technology, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Technologies) == 0 {
		return nil, fmt.Errorf("catalog has no technologies")
	}
	if err := validate(doc.Technologies); err != nil {
		return nil, err
	}
	return doc.Technologies, nil
}

// validate rejects blank or duplicate identities; downstream joins assume
// each identity maps to exactly one technology.
func validate(techs []schema.Technology) error {
	names := make(map[string]struct{}, len(techs))
	repos := make(map[string]struct{}, len(techs))
	pkgs := make(map[string]struct{}, len(techs))
	for _, t := range techs {
		if t.Name == "" || t.Repo == "" || t.Package == "" {
			return fmt.Errorf("catalog entry %+v has a blank field", t)
		}
		if _, ok := names[t.Name]; ok {
			return fmt.Errorf("duplicate technology name %q", t.Name)
		}
		if _, ok := repos[t.Repo]; ok {
			return fmt.Errorf("duplicate repo identity %q", t.Repo)
		}
		if _, ok := pkgs[t.Package]; ok {
			return fmt.Errorf("duplicate package identity %q", t.Package)
		}
		names[t.Name] = struct{}{}
		repos[t.Repo] = struct{}{}
		pkgs[t.Package] = struct{}{}
	}
	return nil
}
