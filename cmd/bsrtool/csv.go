// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/blocksparse/dense"
)

// readCSV loads a rectangular matrix of numbers. Blank lines are skipped;
// every record must have the same field count.
func readCSV(path string) (*dense.Dense[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	rows := make([][]float64, len(records))
	for i, rec := range records {
		rows[i] = make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("read %s: line %d field %d: %w", path, i+1, j+1, err)
			}
			rows[i][j] = v
		}
	}
	d, err := dense.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return d, nil
}

// writeCSV prints d with the shortest exact float formatting.
func writeCSV(w io.Writer, d *dense.Dense[float64]) error {
	cw := csv.NewWriter(w)
	rec := make([]string, d.Cols())
	data := d.RawData()
	for i := 0; i < d.Rows(); i++ {
		for j := range rec {
			rec[j] = strconv.FormatFloat(data[i*d.Cols()+j], 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
