package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultCatalog(t *testing.T) {
	techs, err := Load("")

	require.NoError(t, err)
	assert.Len(t, techs, 10)
	assert.Equal(t, "airflow", techs[0].Name)
	assert.Equal(t, "apache/airflow", techs[0].Repo)
	assert.Equal(t, "apache-airflow", techs[0].Package)
}

func TestLoadCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `technologies:
  - name: polars
    repo: pola-rs/polars
    package: polars
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	techs, err := Load(path)

	require.NoError(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, "polars", techs[0].Name)
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty document", "technologies: []"},
		{"blank field", "technologies:\n  - name: x\n    repo: ''\n    package: y"},
		{"duplicate name", "technologies:\n  - {name: a, repo: r1, package: p1}\n  - {name: a, repo: r2, package: p2}"},
		{"duplicate repo", "technologies:\n  - {name: a, repo: r, package: p1}\n  - {name: b, repo: r, package: p2}"},
		{"duplicate package", "technologies:\n  - {name: a, repo: r1, package: p}\n  - {name: b, repo: r2, package: p}"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
