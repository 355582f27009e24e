package tagindex

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/larderhq/larder/pkg/errors"
)

// ParseDocument reads tag entries back out of a rendered index document.
// Only the table rows are interpreted; header, separator, and prose lines
// are skipped. Used to feed popularity context into tag suggestions.
func ParseDocument(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "|") {
			continue
		}

		var cols []string
		for _, col := range strings.Split(line, "|") {
			if trimmed := strings.TrimSpace(col); trimmed != "" {
				cols = append(cols, trimmed)
			}
		}
		if len(cols) < 2 || strings.EqualFold(cols[0], "tag") {
			continue
		}
		if strings.Trim(cols[1], "-: ") == "" {
			continue // separator row
		}

		count, err := strconv.Atoi(cols[1])
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Tag: cols[0], Count: count})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse("markdown", "", err)
	}

	return entries, nil
}

// LoadDocument reads the index document at path. A missing document is not
// an error; it returns no entries so callers degrade to "no popularity
// context".
func LoadDocument(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	return ParseDocument(f)
}

// Summarize formats the top entries as a compact popularity hint,
// e.g. "bread(12), soup(8)". Returns "none" when there are no entries.
func Summarize(entries []Entry, limit int) string {
	if limit > len(entries) {
		limit = len(entries)
	}
	if limit <= 0 {
		return "none"
	}

	parts := make([]string, 0, limit)
	for _, e := range entries[:limit] {
		parts = append(parts, fmt.Sprintf("%s(%d)", e.Tag, e.Count))
	}
	return strings.Join(parts, ", ")
}
