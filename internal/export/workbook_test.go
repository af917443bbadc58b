package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/testutil"
)

func TestWrite(t *testing.T) {
	db, repo := testutil.SetupTestDB(t)
	testutil.SeedFixture(t, repo)

	var buf bytes.Buffer
	summary, err := Write(context.Background(), db, database.CoreTables, &buf)
	require.NoError(t, err)
	assert.Equal(t, Summary{"schueler": 3, "lehrer": 2, "kurse": 3, "noten": 4}, summary)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, database.CoreTables, f.GetSheetList())

	tests := []struct {
		sheet      string
		header     []string
		dataRows   int
		secondCell string
	}{
		{"schueler", []string{"id", "vorname", "nachname", "klasse", "geburtsdatum", "email"}, 3, "Max"},
		{"lehrer", []string{"id", "vorname", "nachname", "fach1", "fach2", "raum"}, 2, "Petra"},
		{"kurse", []string{"id", "fach", "klasse", "lehrer_id"}, 3, "Mathematik"},
		{"noten", []string{"id", "schueler_id", "kurs_id", "note", "datum", "art"}, 4, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			rows, err := f.GetRows(tt.sheet)
			require.NoError(t, err)
			require.Len(t, rows, tt.dataRows+1)
			assert.Equal(t, tt.header, rows[0])
			assert.Equal(t, "1", rows[1][0])
			assert.Equal(t, tt.secondCell, rows[1][1])
		})
	}
}

func TestWriteUnknownTable(t *testing.T) {
	db, _ := testutil.SetupTestDB(t)

	var buf bytes.Buffer
	_, err := Write(context.Background(), db, []string{"nonexistent"}, &buf)
	assert.ErrorContains(t, err, "does not exist")
}

func TestWriteFile(t *testing.T) {
	db, repo := testutil.SetupTestDB(t)
	testutil.SeedFixture(t, repo)

	path := filepath.Join(t.TempDir(), "schule.xlsx")
	summary, err := WriteFile(context.Background(), db, database.CoreTables, path)
	require.NoError(t, err)
	assert.Equal(t, 4, summary["noten"])

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("noten", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Klausur", value)
}
