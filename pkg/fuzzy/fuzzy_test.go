package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcess(t *testing.T) {
	assert.Equal(t, "apple inc", Process("  Apple, Inc.  "))
	assert.Equal(t, "at t", Process("AT&T"))
	assert.Equal(t, "", Process("..."))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio("apple", "apple"))
	assert.Equal(t, 0, Ratio("abc", "xyz"))
	assert.Equal(t, 80, Ratio("apple", "apply"))
	assert.Equal(t, 100, Ratio("", ""))
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 100, PartialRatio("example", "ex example inc"))
	assert.Equal(t, 100, PartialRatio("ex example inc", "example"))
	assert.Equal(t, 0, PartialRatio("", "abc"))
}

func TestTokenRatios(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("inc apple", "Apple Inc"))
	assert.Equal(t, 100, TokenSetRatio("apple", "apple computer inc"))
	assert.Less(t, TokenSetRatio("banana", "apple computer inc"), 50)
}

func TestWRatio(t *testing.T) {
	assert.Equal(t, 0, WRatio("", "apple"))
	assert.Equal(t, 100, WRatio("Apple Inc", "apple inc"))
	assert.Greater(t, WRatio("Example", "EX Example Inc"), WRatio("Example", "EXPE Expedia Group Inc"))
}

func TestExtractOne(t *testing.T) {
	choices := []string{
		"EXPE Expedia Group Inc",
		"EX Example Inc",
		"EXPO Exponent Inc",
	}

	idx, score := ExtractOne("Example", choices)
	assert.Equal(t, 1, idx)
	assert.GreaterOrEqual(t, score, 85)
}

func TestExtractOne_TieGoesToFirst(t *testing.T) {
	idx, _ := ExtractOne("acme", []string{"ACME Acme", "ACME Acme"})
	assert.Equal(t, 0, idx)
}

func TestExtractOne_Empty(t *testing.T) {
	idx, score := ExtractOne("anything", nil)
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0, score)
}
