package csvparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

func defaultPreprocess() PreprocessOptions {
	return PreprocessOptions{BannerSignatures: DefaultBannerSignatures, StripTitlePrefix: true}
}

func TestPreprocess_FiltersBlankLinesAndNormalizesEndings(t *testing.T) {
	doc, err := Preprocess("\ufeffID,Region\r\n\r\nQ1,East US  \r\n   \n", defaultPreprocess())
	require.NoError(t, err)
	assert.Equal(t, []string{"ID,Region", "Q1,East US"}, doc.Lines)
	assert.False(t, doc.BannerStripped)
}

func TestPreprocess_StripsBanner(t *testing.T) {
	raw := "Project: Quota  Server: prod  Query: open requests\nID\tRegion\nQ1\tEast US\n"
	doc, err := Preprocess(raw, defaultPreprocess())
	require.NoError(t, err)
	assert.True(t, doc.BannerStripped)
	assert.Equal(t, "ID\tRegion", doc.Lines[0])
}

func TestPreprocess_BannerNeedsEverySignature(t *testing.T) {
	raw := "Project: Quota only\nID\tRegion\nQ1\tEast US\n"
	doc, err := Preprocess(raw, defaultPreprocess())
	require.NoError(t, err)
	assert.False(t, doc.BannerStripped)
	assert.Len(t, doc.Lines, 3)
}

func TestPreprocess_StripsTitlePrefix(t *testing.T) {
	doc, err := Preprocess("Title: ID,Region\nQ1,East US", defaultPreprocess())
	require.NoError(t, err)
	assert.Equal(t, "ID,Region", doc.Lines[0])

	doc, err = Preprocess("Title: ID,Region\nQ1,East US", PreprocessOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Title: ID,Region", doc.Lines[0])
}

func TestPreprocess_Errors(t *testing.T) {
	_, err := Preprocess("   \n\t\n", defaultPreprocess())
	var empty *types.EmptyInputError
	assert.True(t, errors.As(err, &empty))

	_, err = Preprocess("Project: a Server: b Query: c\n", defaultPreprocess())
	assert.True(t, errors.As(err, &empty), "banner-only input is empty after stripping")

	_, err = Preprocess("ID\tSubscription ID\n\n", defaultPreprocess())
	var short *types.InsufficientRowsError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, 1, short.Lines)
}

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Separator
	}{
		{"tabs", []string{"a\tb\tc", "1\t2\t3"}, Tab},
		{"commas", []string{"a,b,c", "1,2,3"}, Comma},
		{"tie goes to comma", []string{"a\tb,c", "1\t2,3"}, Comma},
		{"no delimiters", []string{"ID Region", "Q1 East"}, Whitespace},
		{"per-line max not total", []string{"a\tb\tc\td", "x,y", "x,y", "x,y"}, Tab},
		{"comma outlier line", []string{"a\tb", "free, text, with, commas\tz"}, Comma},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSeparator(tt.lines))
		})
	}
}

func TestDetectSeparator_ScansOnlyLeadingWindow(t *testing.T) {
	lines := make([]string, 0, SeparatorScanLimit+1)
	for i := 0; i < SeparatorScanLimit; i++ {
		lines = append(lines, "a\tb")
	}
	lines = append(lines, "x,y,z,w,v")
	assert.Equal(t, Tab, DetectSeparator(lines))
}

func TestDetectSeparator_TabChoiceImpliesTabsDominate(t *testing.T) {
	lines := []string{"ID\tSub\tRegion", "Q1\tS1\tEast, US", "Q2\tS2\tWest"}
	require.Equal(t, Tab, DetectSeparator(lines))

	maxComma, maxTab := 0, 0
	for _, line := range lines {
		assert.Contains(t, line, "\t")
		maxComma = max(maxComma, strings.Count(line, ","))
		maxTab = max(maxTab, strings.Count(line, "\t"))
	}
	assert.Greater(t, maxTab, maxComma)
}

func TestSplitLine(t *testing.T) {
	assert.Equal(t, []string{"Q1", "Sub 1", "East US"}, SplitLine(` Q1 ,"Sub 1", East US `, Comma))
	assert.Equal(t, []string{"a", "b", ""}, SplitLine("a\t b \t", Tab))
	assert.Equal(t, []string{"ID", "Region"}, SplitLine("ID   Region", Whitespace))
	assert.Equal(t, []string{"Q1", "East"}, SplitLine("   Q1  East ", Whitespace), "indentation does not shift whitespace cells")
	assert.Equal(t, []string{"", "Q1", "East"}, SplitLine("\tQ1\tEast", Tab), "a leading empty tab cell is kept")
	assert.Equal(t, []string{"say hi"}, SplitLine(`say "hi"`, Tab), "quotes are removed anywhere in the cell")
}

func TestTokenize(t *testing.T) {
	doc := &Document{Lines: []string{"ID\tRegion\tZone", "Q1\tEast, US\t1"}}
	table := Tokenize(doc)
	assert.Equal(t, Tab, table.Separator)
	assert.Equal(t, [][]string{{"ID", "Region", "Zone"}, {"Q1", "East, US", "1"}}, table.Rows)
}

func TestSeparatorString(t *testing.T) {
	assert.Equal(t, "tab", Tab.String())
	assert.Equal(t, "comma", Comma.String())
	assert.Equal(t, "whitespace", Whitespace.String())
}
