package repository

import (
	"fmt"
	"strings"
)

// createHeaderMap maps each required column name to its index in header.
// Optional columns are mapped when present and left out otherwise.
func createHeaderMap(header []string, required []string, optional ...string) (map[string]int, error) {
	columnMap := make(map[string]int)

	lookup := func(column string) bool {
		for i, field := range header {
			if strings.EqualFold(column, field) {
				columnMap[column] = i
				return true
			}
		}
		return false
	}

	for _, column := range required {
		if !lookup(column) {
			return nil, fmt.Errorf("required field '%s' not found in CSV header", column)
		}
	}
	for _, column := range optional {
		lookup(column)
	}

	return columnMap, nil
}

// cell returns the value of column in row, or "" when the column or cell is missing
func cell(row []string, columnMap map[string]int, column string) string {
	idx, ok := columnMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
