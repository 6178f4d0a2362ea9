package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// PrintCatalogResults outputs the technology catalog, dispatching based on the output format configured.
func PrintCatalogResults(catalog []schema.Technology, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, catalog)
		}, "Wrote JSON catalog")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "repo", "package"}, func(csvWriter *csv.Writer) error {
				for _, tech := range catalog {
					if err := csvWriter.Write([]string{tech.Name, tech.Repo, tech.Package}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV catalog")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printCatalogTable(catalog); err != nil {
			return fmt.Errorf("error writing catalog table output: %w", err)
		}
	}
	return nil
}

// printCatalogTable prints the catalog entries.
func printCatalogTable(catalog []schema.Technology) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Technology", "Repository", "Package"})

	var data [][]string
	for _, tech := range catalog {
		data = append(data, []string{tech.Name, tech.Repo, tech.Package})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d technologies tracked\n", len(catalog))
	return nil
}
