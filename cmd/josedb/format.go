package main

import (
	"fmt"
	"io"
	"strings"

	"josedb/internal/engine"
)

// printResult writes a status line for a non-SELECT Result, or a simple
// tab-aligned table for a SELECT Result.
func printResult(out io.Writer, result *engine.Result) {
	if result.Rows == nil {
		fmt.Fprintln(out, result.Status)
		return
	}
	if len(result.Rows) == 0 {
		fmt.Fprintln(out, "(0 rows)")
		return
	}

	header := make([]string, len(result.Rows[0]))
	for i, f := range result.Rows[0] {
		header[i] = f.Name
	}
	fmt.Fprintln(out, strings.Join(header, "\t"))

	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, f := range row {
			cells[i] = f.Value.String()
		}
		fmt.Fprintln(out, strings.Join(cells, "\t"))
	}
}

func printTableNames(out io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(out, "(no tables)")
		return
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
}

func printDescribe(out io.Writer, ex *engine.Executor, name string) {
	columns, primaryKey, uniqueColumns, err := ex.Describe(name)
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", err)
		return
	}
	for _, c := range columns {
		marker := ""
		switch {
		case c.Name == primaryKey:
			marker = " PRIMARY KEY"
		case contains(uniqueColumns, c.Name):
			marker = " UNIQUE"
		}
		fmt.Fprintf(out, "%s %s%s\n", c.Name, c.Type, marker)
	}
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
