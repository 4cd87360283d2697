package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	OutputFormatTable   = "table"
	OutputFormatJSON    = "json"
	OutputFormatJSONL   = "jsonl"
	OutputFormatYAML    = "yaml"
	OutputFormatCSV     = "csv"
	OutputFormatParquet = "parquet"
)

// ErrUnsupportedOutputFormat is returned for an unknown --output value.
var ErrUnsupportedOutputFormat = errors.New("unsupported output format")

// defaultJSONIndent is the indent used for json output.
const defaultJSONIndent = "  "

// renderRows writes rows to stdout in the requested format. Tabular formats
// (table, csv) project each row through tableRow under the given headers;
// record formats (json, jsonl, yaml, parquet) encode the typed rows
// directly.
func renderRows[T any](format string, rows []T, headers []string, tableRow func(T) []string) error {
	switch format {
	case OutputFormatJSON:
		return renderJSON(os.Stdout, rows)
	case OutputFormatJSONL:
		return renderJSONLines(os.Stdout, rows)
	case OutputFormatYAML:
		return renderYAML(os.Stdout, rows)
	case OutputFormatCSV:
		return renderCSV(os.Stdout, headers, projectRows(rows, tableRow))
	case OutputFormatParquet:
		return renderParquet(os.Stdout, rows)
	case OutputFormatTable, "":
		return renderTable(os.Stdout, headers, projectRows(rows, tableRow))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutputFormat, format)
	}
}

// projectRows maps typed rows to table cells.
func projectRows[T any](rows []T, tableRow func(T) []string) [][]string {
	projected := make([][]string, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, tableRow(row))
	}

	return projected
}

// renderJSON writes rows as an indented JSON array.
func renderJSON(writer io.Writer, rows interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", defaultJSONIndent)

	err := encoder.Encode(rows)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	return nil
}

// renderJSONLines writes one JSON object per line.
func renderJSONLines[T any](writer io.Writer, rows []T) error {
	encoder := json.NewEncoder(writer)

	for _, row := range rows {
		err := encoder.Encode(row)
		if err != nil {
			return fmt.Errorf("encoding json lines: %w", err)
		}
	}

	return nil
}

// renderYAML writes rows as a YAML sequence.
func renderYAML(writer io.Writer, rows interface{}) error {
	encoder := yaml.NewEncoder(writer)

	err := encoder.Encode(rows)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	return encoder.Close()
}

// renderCSV writes a header row followed by the projected cells.
func renderCSV(writer io.Writer, headers []string, rows [][]string) error {
	csvWriter := csv.NewWriter(writer)

	err := csvWriter.Write(headers)
	if err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range rows {
		err = csvWriter.Write(row)
		if err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	csvWriter.Flush()

	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// renderTable writes a text table.
func renderTable(writer io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(writer)

	headerCells := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		headerCells = append(headerCells, header)
	}

	table.Header(headerCells...)

	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}

		_ = table.Append(cells...)
	}

	return table.Render()
}

// renderParquet writes rows as a parquet file.
func renderParquet[T any](writer io.Writer, rows []T) error {
	parquetWriter := parquet.NewGenericWriter[T](writer)

	_, err := parquetWriter.Write(rows)
	if err != nil {
		return fmt.Errorf("writing parquet rows: %w", err)
	}

	err = parquetWriter.Close()
	if err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}

	return nil
}
