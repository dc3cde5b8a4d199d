package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// WordTable maps a category to its sorted, unique words.
type WordTable map[string][]string

// Categories returns the category names in sorted order.
func (t WordTable) Categories() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Words returns the sorted union of the given categories. Unknown
// categories are an error so typos in a layout do not silently empty a
// folder.
func (t WordTable) Words(categories ...string) ([]string, error) {
	set := map[string]bool{}
	for _, c := range categories {
		words, ok := t[c]
		if !ok {
			return nil, fmt.Errorf("unknown category %q", c)
		}
		for _, w := range words {
			set[w] = true
		}
	}
	return sortedKeys(set), nil
}

// ReadWordTableFile reads a word table from a file
func ReadWordTableFile(filename string) (WordTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word table: %w", err)
	}
	defer f.Close()
	return ReadWordTable(f)
}

// ReadWordTable parses a tab separated word table. The header row names the
// categories; the first header cell is ignored. Blank lines and rows without
// a word are skipped.
func ReadWordTable(r io.Reader) (WordTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return WordTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	sets := make([]map[string]bool, len(headers))
	for i := 1; i < len(headers); i++ {
		sets[i] = map[string]bool{}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read word table: %w", err)
		}
		word := strings.TrimSpace(row[0])
		if word == "" {
			continue
		}
		for i := 1; i < len(row) && i < len(headers); i++ {
			if strings.TrimSpace(row[i]) != "" {
				sets[i][word] = true
			}
		}
	}

	table := WordTable{}
	for i := 1; i < len(headers); i++ {
		name := strings.TrimSpace(headers[i])
		if name == "" {
			continue
		}
		for w := range sets[i] {
			table[name] = append(table[name], w)
		}
		sort.Strings(table[name])
		if table[name] == nil {
			table[name] = []string{}
		}
	}
	return table, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
