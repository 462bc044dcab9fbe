package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

var errNoRows = errors.New("no data rows")

// fields splits a line on blanks and commas after dropping any comment.
func fields(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// readTable parses "x v" rows. Extra columns are ignored.
func readTable(r io.Reader) (x, v []float64, err error) {
	sc := bufio.NewScanner(r)

	for line := 1; sc.Scan(); line++ {
		f := fields(sc.Text())
		if len(f) == 0 {
			continue
		}

		if len(f) < 2 {
			return nil, nil, fmt.Errorf("line %d: want two columns, got %d", line, len(f))
		}

		xi, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}

		vi, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}

		x = append(x, xi)
		v = append(v, vi)
	}

	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	if len(x) == 0 {
		return nil, nil, errNoRows
	}

	return x, v, nil
}

// readColumn parses the first column of every non-empty row.
func readColumn(r io.Reader) ([]float64, error) {
	var out []float64

	sc := bufio.NewScanner(r)

	for line := 1; sc.Scan(); line++ {
		f := fields(sc.Text())
		if len(f) == 0 {
			continue
		}

		val, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		out = append(out, val)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, errNoRows
	}

	return out, nil
}
