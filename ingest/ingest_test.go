package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "observations.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	t.Run("reads header and data rows", func(t *testing.T) {
		path := writeTempCSV(t, "Floor,Room,Time,Status\nL10,Meet 01,09:00,Occupied\nL10,Meet 01,09:30,Unoccupied\n")

		matrix, err := ReadCSV(path)

		require.NoError(t, err)
		require.Len(t, matrix, 3)
		assert.Equal(t, []any{"Floor", "Room", "Time", "Status"}, matrix[0])
		assert.Equal(t, "Occupied", matrix[1][3])
	})

	t.Run("tolerates ragged rows", func(t *testing.T) {
		path := writeTempCSV(t, "Floor,Room,Time,Status\nL10,Meet 01\n")

		matrix, err := ReadCSV(path)

		require.NoError(t, err)
		require.Len(t, matrix, 2)
		assert.Len(t, matrix[1], 2)
	})

	t.Run("empty file returns error", func(t *testing.T) {
		path := writeTempCSV(t, "")

		_, err := ReadCSV(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}

func TestReadWorkbook(t *testing.T) {
	t.Run("reads the first sheet into a matrix", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "observations.xlsx")
		f := excelize.NewFile()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Floor", "Room", "Status"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"L10", "Meet 01", "Occupied"}))
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		matrix, err := ReadWorkbook(path)

		require.NoError(t, err)
		require.Len(t, matrix, 2)
		assert.Equal(t, []any{"Floor", "Room", "Status"}, matrix[0])
		assert.Equal(t, "L10", matrix[1][0])
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := ReadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))

		require.Error(t, err)
	})
}

func TestReadMatrix(t *testing.T) {
	t.Run("dispatches on extension", func(t *testing.T) {
		path := writeTempCSV(t, "Floor\nL10\n")

		matrix, err := ReadMatrix(path)

		require.NoError(t, err)
		assert.Len(t, matrix, 2)
	})

	t.Run("unsupported extension returns error", func(t *testing.T) {
		_, err := ReadMatrix("observations.pdf")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported input format")
	})
}
