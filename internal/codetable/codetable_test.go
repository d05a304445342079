package codetable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDefaultBiasTable(t *testing.T) {
	s := Default()

	label, ok := s.Label(BiasMotivation, "88")
	require.True(t, ok)
	assert.Equal(t, "None (no bias)", label)

	code, ok := s.Table(BiasMotivation).Code("anti-jewish")
	require.True(t, ok)
	assert.Equal(t, "21", code)

	_, ok = s.Label(BiasMotivation, "00")
	assert.False(t, ok)
	_, ok = s.Label("no_such_table", "88")
	assert.False(t, ok)
}

func TestDefaultUCRTable(t *testing.T) {
	ucr := Default().Table(UCROffense)
	require.NotNil(t, ucr)

	assert.True(t, ucr.Contains("13A"))
	assert.True(t, ucr.Contains("90Z"))
	assert.False(t, ucr.Contains("999"))
	assert.Equal(t, "09A", ucr.Codes()[0])
}

func TestDefaultIsIndependent(t *testing.T) {
	a := Default()
	a.Table(Sex).put("X", "Other")

	assert.False(t, Default().Table(Sex).Contains("X"))
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, s.Names(), BiasMotivation)
}

func TestLoadWorkbookOverlay(t *testing.T) {
	// Given a workbook overriding one bias label and adding a new table
	path := filepath.Join(t.TempDir(), "codes.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", BiasMotivation))
	require.NoError(t, f.SetCellValue(BiasMotivation, "A1", "Code"))
	require.NoError(t, f.SetCellValue(BiasMotivation, "B1", "Label"))
	require.NoError(t, f.SetCellValue(BiasMotivation, "A2", "88"))
	require.NoError(t, f.SetCellValue(BiasMotivation, "B2", "No Bias"))
	_, err := f.NewSheet("agency")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("agency", "A1", "WA0000000"))
	require.NoError(t, f.SetCellValue("agency", "B1", "Example Police Department"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	// When
	s, err := Load(path)

	// Then
	require.NoError(t, err)
	label, _ := s.Label(BiasMotivation, "88")
	assert.Equal(t, "No Bias", label)
	label, _ = s.Label(BiasMotivation, "21")
	assert.Equal(t, "Anti-Jewish", label, "built-in entries survive the overlay")
	assert.False(t, s.Table(BiasMotivation).Contains("Code"), "header row is skipped")

	agency, ok := s.Label("agency", "WA0000000")
	require.True(t, ok)
	assert.Equal(t, "Example Police Department", agency)

	original, _ := Default().Label(BiasMotivation, "88")
	assert.Equal(t, "None (no bias)", original)
}

func TestLoadMissingWorkbook(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
