package spreadsheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/studentsync/internal/pkg/apperrors"
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]interface{}, active string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if name != "Sheet1" {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}

	idx, err := f.GetSheetIndex(active)
	require.NoError(t, err)
	f.SetActiveSheet(idx)
	require.NoError(t, f.SaveAs(path))
}

func TestReadRows_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	writeWorkbook(t, path, map[string][][]interface{}{
		"Sheet1": {{"ignored"}},
		"Kelas6": {
			{"NO", "NAMA", "KELAS", "NISN"},
			{1, "Afiqah Dwi Salsabila", "6 A", "0141437500"},
			{2, "Alif", nil, "0127261091", "extra"},
		},
	}, "Kelas6")

	rows, err := ReadRows(path, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"NO", "NAMA", "KELAS", "NISN"}, rows[0])
	assert.Equal(t, []string{"1", "Afiqah Dwi Salsabila", "6 A", "0141437500"}, rows[1])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "0127261091", rows[2][3])

	rows, err = ReadRows(path, Options{Sheet: "Sheet1"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ignored"}}, rows)
}

func TestReadRows_UnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	writeWorkbook(t, path, map[string][][]interface{}{"Sheet1": {{"NO"}}}, "Sheet1")

	_, err := ReadRows(path, Options{Sheet: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestReadRows_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	content := "\ufeffNO;NAMA;KELAS;NISN\n1;\"Budi; Santoso\";6A;1234567890\n2;Siti\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := ReadRows(path, Options{Comma: ';'})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "NO", rows[0][0])
	assert.Equal(t, "Budi; Santoso", rows[1][1])
	assert.Equal(t, []string{"2", "Siti"}, rows[2])
}

func TestReadRows_Missing(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "nope.xlsx"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSourceNotFound))
}

func TestReadRows_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.ods")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := ReadRows(path, Options{})
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedSource))
}
