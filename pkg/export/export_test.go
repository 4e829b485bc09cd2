package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeSheetTitle(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Atelier", SafeSheetTitle("", "Atelier"))
	require.Equal(t, "Cuisine", SafeSheetTitle("Cuisine", "Atelier"))
	require.Equal(t, "AB", SafeSheetTitle("A[]:*?/\\B", "Atelier"))
	require.Equal(t, "Atelier", SafeSheetTitle("[]:*?", "Atelier"))

	long := strings.Repeat("x", 40)
	require.Len(t, SafeSheetTitle(long, "Atelier"), 31)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteCSV(&buf, [][]string{
		{"Nom", "Prénom"},
		{"Durand", "Xavier"},
	})

	require.NoError(t, err)
	require.Equal(t, "Nom;Prénom\nDurand;Xavier\n", buf.String())
}

func TestWorkbook(t *testing.T) {
	t.Parallel()

	wb := &Workbook{}
	ws := wb.AddSheet("Synthese")
	ws.Append("Secteur", "Atelier")
	ws.Append("Nord", "Cuisine")

	require.Len(t, wb.Sheets, 1)
	require.Equal(t, "Synthese", wb.Sheets[0].Title)
	require.Len(t, wb.Sheets[0].Rows, 2)
}
