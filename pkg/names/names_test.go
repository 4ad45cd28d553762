package names

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Example Corp. - Common Stock", "Example"},
		{"Apple Inc. - Common Stock", "Apple"},
		{"Alphabet Inc. - Class A Common Stock", "Alphabet"},
		{"Tesla, Inc. - Common Stock", "Tesla"},
		{"Sirius XM Holdings Inc. - Common Stock", "Sirius XM Holdings"},
		{"Baidu, Inc. - ADS", "Baidu"},
		{"Check Point Software Technologies Ltd. - Ordinary Shares", "Check Point Software Technologies"},
		{"Infosys Limited", "Infosys"},
		// "Corp" is removed before "Corporation" is tried
		{"Microsoft Corporation - Common Stock", "Microsoft oration"},
		{"  Zoom Video  ", "Zoom Video"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Example Corp. - Common Stock",
		"IIncnc Holdings",
		"A Inc- B",
		"Corp Corp Corporation",
		"Ltd.Ltd. Limited - X - Y",
		"Ordinary Name",
		" - leading separator",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizer_StripNonLetters(t *testing.T) {
	n := Normalizer{StripNonLetters: true}

	assert.Equal(t, "AT T", n.Normalize("AT&T Inc. - Common Stock"))
	assert.Equal(t, "M Co", n.Normalize("3M Co."))

	once := n.Normalize("1-800-FLOWERS.COM, Inc. - Class A")
	assert.Equal(t, once, n.Normalize(once))
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Apple Inc. - Common Stock", "Example Corp."})
	assert.Equal(t, []string{"Apple", "Example"}, got)
}

func TestReadCompanyNames(t *testing.T) {
	listing := strings.Join([]string{
		"Symbol,companyName,Market Category",
		"AAPL,Apple Inc. - Common Stock,Q",
		"EX,Example Corp. - Common Stock,G",
		"SHORT",
	}, "\n")

	got, err := ReadCompanyNames(strings.NewReader(listing), "companyName")
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple Inc. - Common Stock", "Example Corp. - Common Stock"}, got)
}

func TestReadCompanyNames_MissingColumn(t *testing.T) {
	_, err := ReadCompanyNames(strings.NewReader("Symbol,Security Name\nAAPL,Apple\n"), "companyName")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "companyName")
}

func TestReadCompanyNames_Empty(t *testing.T) {
	_, err := ReadCompanyNames(strings.NewReader(""), "companyName")
	require.Error(t, err)
}

func TestLoadCompanyNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nasdaqlisted.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffSymbol,companyName\nEX,Example Corp.\n"), 0o644))

	got, err := LoadCompanyNames(path, "companyName")
	require.NoError(t, err)
	assert.Equal(t, []string{"Example Corp."}, got)

	_, err = LoadCompanyNames(filepath.Join(t.TempDir(), "missing.csv"), "companyName")
	require.Error(t, err)
}
