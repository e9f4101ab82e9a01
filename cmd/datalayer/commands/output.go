package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"gorm.io/datalayer"
	"gorm.io/datalayer/utils"
)

func render(w io.Writer, format string, value interface{}) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	case "table":
		records, ok := value.([]datalayer.Record)
		if !ok {
			return render(w, "yaml", value)
		}
		return renderTable(w, records)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderTable(w io.Writer, records []datalayer.Record) error {
	if len(records) == 0 {
		color.New(color.FgYellow).Fprintln(w, "no rows")
		return nil
	}

	headers := columnsOf(records)
	data := pterm.TableData{headers}
	for _, rec := range records {
		row := make([]string, len(headers))
		for idx, column := range headers {
			row[idx] = utils.ToString(rec[column])
		}
		data = append(data, row)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	return nil
}

// columnsOf sorted union of the record columns
func columnsOf(records []datalayer.Record) []string {
	seen := map[string]bool{}
	var columns []string
	for _, rec := range records {
		for column := range rec {
			if !seen[column] {
				seen[column] = true
				columns = append(columns, column)
			}
		}
	}
	sort.Strings(columns)
	return columns
}
