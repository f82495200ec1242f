package xlsxparser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func makeWorkbook(t *testing.T, sheets map[string][][]string, order ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			for c, val := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, val))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestSheetToText(t *testing.T) {
	buf := makeWorkbook(t, map[string][][]string{
		"Quotas": {
			{"ID", "Subscription ID", "Region"},
			{"Q1", "Sub1", "East US"},
			{"Q2", "Sub2", "West\tUS\nlower"},
		},
	}, "Quotas")

	wb, err := OpenReader(buf)
	require.NoError(t, err)
	defer wb.Close()

	name, ok := wb.OnlySheet()
	require.True(t, ok)
	assert.Equal(t, "Quotas", name)

	text, err := wb.SheetToText(name)
	require.NoError(t, err)
	assert.Equal(t, "ID\tSubscription ID\tRegion\nQ1\tSub1\tEast US\nQ2\tSub2\tWest US lower", text)
}

func TestMultipleSheets(t *testing.T) {
	buf := makeWorkbook(t, map[string][][]string{
		"Summary": {{"Total", "2"}},
		"Data":    {{"ID", "Region"}, {"Q1", "East US"}},
	}, "Summary", "Data")

	wb, err := OpenReader(buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Summary", "Data"}, wb.SheetNames())
	_, ok := wb.OnlySheet()
	assert.False(t, ok)

	text, err := wb.SheetToText("Data")
	require.NoError(t, err)
	assert.Equal(t, "ID\tRegion\nQ1\tEast US", text)

	_, err = wb.SheetToText("Missing")
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestOpenReader_Corrupt(t *testing.T) {
	_, err := OpenReader(bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}
