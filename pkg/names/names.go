package names

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Corporate suffixes removed from listing names, in removal order.
var corporateSuffixes = []string{
	"Inc.",
	"Inc",
	"Corp",
	"Corporation",
	"Ltd.",
	"Limited",
}

var nonLetters = regexp.MustCompile(`[^a-zA-Z]+`)

// Normalizer turns listing names into search keywords.
type Normalizer struct {
	// StripNonLetters replaces every run of non-letter characters with a single
	// space. Off by default so keywords keep digits and ampersands.
	StripNonLetters bool
}

// Normalize cleans a name with the default Normalizer.
func Normalize(raw string) string {
	return Normalizer{}.Normalize(raw)
}

// NormalizeAll cleans every name in order.
func NormalizeAll(raw []string) []string {
	n := Normalizer{}
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		out = append(out, n.Normalize(name))
	}
	return out
}

// Normalize keeps the part of raw before the first " - ", drops corporate
// suffixes wherever they appear and trims surrounding whitespace and dangling
// punctuation. The steps repeat until the name stops changing, so the result
// is a fixed point.
func (n Normalizer) Normalize(raw string) string {
	name := raw
	for {
		next := n.pass(name)
		if next == name {
			return next
		}
		name = next
	}
}

func (n Normalizer) pass(name string) string {
	name, _, _ = strings.Cut(name, " - ")

	if n.StripNonLetters {
		name = nonLetters.ReplaceAllString(name, " ")
	}

	for _, suffix := range corporateSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}

	// "Example Corp." leaves "Example ." behind once "Corp" is gone
	return strings.Trim(name, " \t.,")
}

// ============================================================================
// LISTING FILES
// ============================================================================

// LoadCompanyNames reads the named column of a CSV listing with a header row.
func LoadCompanyNames(filename string, column string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing file: %w", err)
	}
	defer file.Close()

	return ReadCompanyNames(file, column)
}

// ReadCompanyNames is LoadCompanyNames over an already open reader.
func ReadCompanyNames(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("listing is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read listing header: %w", err)
	}

	col := -1
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("listing has no %q column", column)
	}

	var names []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read listing: %w", err)
		}
		if col >= len(record) {
			continue
		}
		names = append(names, record[col])
	}

	return names, nil
}
