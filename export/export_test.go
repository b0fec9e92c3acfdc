package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"workplace-utilization/specs"
)

func sampleRooms() []specs.RoomPerformanceMetricSpec {
	return []specs.RoomPerformanceMetricSpec{
		{
			Floor: "L10", RoomName: "Meet 01", RoomType: "Meeting Room",
			Capacity: 10, ObservedSlots: 5, OccupiedSlots: 5,
			UtilizationPct: 100, AvgOccupancy: 5.6,
			TopMeetingSize: "3-4p (60%)",
			Classification: specs.ClassificationMixed,
		},
		{
			Floor: "L11", RoomName: "Boardroom", RoomType: "Conference",
			Capacity: 0, ObservedSlots: 3, OccupiedSlots: 0,
			TopMeetingSize: "-",
			Classification: specs.ClassificationUnclassified,
		},
	}
}

func TestWriteRoomCSV(t *testing.T) {
	t.Run("writes the fixed headers and one row per room", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rooms.csv")

		require.NoError(t, WriteRoomCSV(path, sampleRooms()))

		file, err := os.Open(path)
		require.NoError(t, err)
		defer file.Close()

		rows, err := csv.NewReader(file).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, roomHeaders, rows[0])
		assert.Equal(t, "Meet 01", rows[1][1])
		assert.Equal(t, "100.00", rows[1][6])
		assert.Equal(t, specs.ClassificationUnclassified, rows[2][9])
	})
}

func TestWriteJSON(t *testing.T) {
	t.Run("round-trips the metrics bundle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metrics.json")
		metrics := specs.UtilizationMetricsSpec{
			RoomMetrics:        sampleRooms(),
			TotalRooms:         2,
			TotalObservations:  8,
			OverallUtilization: 62.5,
		}

		require.NoError(t, WriteJSON(path, metrics))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded specs.UtilizationMetricsSpec
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, 2, decoded.TotalRooms)
		require.Len(t, decoded.RoomMetrics, 2)
		assert.Equal(t, "Meet 01", decoded.RoomMetrics[0].RoomName)
	})
}

func TestWriteWorkbook(t *testing.T) {
	t.Run("writes records and room performance to separate sheets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.xlsx")
		records := []specs.ObservationRecordSpec{
			{ID: "mtg-1", Date: "2026-03-02", TimeSlot: "09:00", Floor: "L10",
				RoomName: "Meet 01", RoomType: "Meeting Room", IsOccupied: true,
				AttendeeCount: 4, Week: 1, Day: 2},
		}

		require.NoError(t, WriteWorkbook(path, records, sampleRooms()))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		assert.ElementsMatch(t, []string{"Normalized Records", "Room Performance"}, f.GetSheetList())

		recordRows, err := f.GetRows("Normalized Records")
		require.NoError(t, err)
		require.Len(t, recordRows, 2)
		assert.Equal(t, "ID", recordRows[0][0])
		assert.Equal(t, "mtg-1", recordRows[1][0])

		roomRows, err := f.GetRows("Room Performance")
		require.NoError(t, err)
		require.Len(t, roomRows, 3)
		assert.Equal(t, roomHeaders, roomRows[0])
		assert.Equal(t, "Boardroom", roomRows[2][1])
	})
}
