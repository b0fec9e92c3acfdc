package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workplace-utilization/specs"
)

func TestAggregateMeeting(t *testing.T) {
	t.Run("full pipeline from raw matrix to metrics", func(t *testing.T) {
		rows := [][]any{
			meetingHeader(),
			// Three people in Meet 01 at 09:00, logged one row per person.
			{"L10", "Meet 01", "Meeting Room", 1, 1, "09:00", "Occupied", 1},
			{"L10", "Meet 01", "Meeting Room", 1, 1, "09:00", "Occupied", 1},
			{"L10", "Meet 01", "Meeting Room", 1, 1, "09:00", "Occupied", 1},
			// Meet 01 vacant at 10:00.
			{"L10", "Meet 01", "Meeting Room", 1, 1, "10:00", "Unoccupied", nil},
			// Boardroom holds eight at 09:00, logged as one row with a count.
			{"L11", "Boardroom", "Conference", 1, 1, "09:00", "Occupied", 8},
		}

		result, err := TransformSpec(rows, meetingTestMapping, specs.StudyTypeMeeting)
		require.NoError(t, err)
		require.Len(t, result.Records, 5)

		capacities := map[string]int{
			RoomCapacityKey("L10", "Meet 01"):   4,
			RoomCapacityKey("L11", "Boardroom"): 10,
		}
		metrics, err := AggregateMeeting(result.Records, capacities)
		require.NoError(t, err)

		assert.Equal(t, 2, metrics.TotalRooms)
		assert.Equal(t, 3, metrics.TotalObservations)
		assert.InDelta(t, 66.67, metrics.OverallUtilization, 0.01)
		assert.InDelta(t, 5.5, metrics.OverallAvgAttendees, 0.001)

		meet01 := metrics.RoomMetrics[0]
		assert.Equal(t, "Meet 01", meet01.RoomName)
		assert.Equal(t, 2, meet01.ObservedSlots)
		assert.Equal(t, 1, meet01.OccupiedSlots)
		assert.InDelta(t, 50.0, meet01.UtilizationPct, 0.001)
		assert.InDelta(t, 3.0, meet01.AvgOccupancy, 0.001)

		boardroom := metrics.RoomMetrics[1]
		assert.Equal(t, "Boardroom", boardroom.RoomName)
		assert.Equal(t, 1, boardroom.OccupiedSlots)
		assert.InDelta(t, 8.0, boardroom.AvgOccupancy, 0.001)
		assert.Equal(t, specs.ClassificationOverUtilized, boardroom.Classification)

		require.NotNil(t, metrics.Concurrency)
		require.Len(t, metrics.Concurrency.Timeline, 2)
		assert.Equal(t, 2, metrics.Concurrency.Timeline[0].Occupied)
		assert.Equal(t, 2, metrics.Concurrency.Timeline[0].Total)
	})

	t.Run("global bins partition the occupied events of every room", func(t *testing.T) {
		records := []specs.ObservationRecordSpec{
			{ID: "mtg-1", Floor: "L10", RoomName: "Meet 01", RoomType: "Meeting Room", Week: 1, Day: 1, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 2},
			{ID: "mtg-2", Floor: "L10", RoomName: "Meet 02", RoomType: "Meeting Room", Week: 1, Day: 1, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 6},
			{ID: "mtg-3", Floor: "L11", RoomName: "Boardroom", RoomType: "Conference", Week: 1, Day: 1, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 14},
		}

		metrics, err := AggregateMeeting(records, nil)
		require.NoError(t, err)

		require.Len(t, metrics.GlobalSizeBins, 6)
		total := 0
		for _, bin := range metrics.GlobalSizeBins {
			total += bin.Count
		}
		occupied := 0
		for _, room := range metrics.RoomMetrics {
			occupied += room.OccupiedSlots
		}
		assert.Equal(t, occupied, total)
	})

	t.Run("empty input yields empty aggregates without error", func(t *testing.T) {
		metrics, err := AggregateMeeting(nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, metrics.TotalRooms)
		assert.Equal(t, 0, metrics.TotalObservations)
		assert.Empty(t, metrics.RoomMetrics)
		require.Len(t, metrics.GlobalSizeBins, 6)
		require.Len(t, metrics.GlobalInsights, 1)
		assert.Contains(t, metrics.GlobalInsights[0], "Insufficient data")
	})
}

func TestComputeConcurrencySpec(t *testing.T) {
	t.Run("filtered view matches the room type only", func(t *testing.T) {
		records := []specs.ObservationRecordSpec{
			{ID: "mtg-1", Floor: "L10", RoomName: "Meet 01", RoomType: "Meeting Room", Week: 1, Day: 1, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 2},
			{ID: "mtg-2", Floor: "L10", RoomName: "Focus 01", RoomType: "Focus Booth", Week: 1, Day: 1, TimeSlot: "09:00", IsOccupied: false},
		}

		stats, err := ComputeConcurrencySpec(records, "Meeting Room")

		require.NoError(t, err)
		require.Len(t, stats.Timeline, 1)
		assert.Equal(t, 1, stats.Timeline[0].Total)
		assert.InDelta(t, 100.0, stats.Timeline[0].Pct, 0.001)
	})
}

func TestGenerateSampleRecords(t *testing.T) {
	t.Run("same seed yields the same study", func(t *testing.T) {
		first, err := GenerateSampleRecords(specs.StudyTypeMeeting, 7)
		require.NoError(t, err)
		second, err := GenerateSampleRecords(specs.StudyTypeMeeting, 7)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("meeting sample aggregates cleanly", func(t *testing.T) {
		records, err := GenerateSampleRecords(specs.StudyTypeMeeting, 42)
		require.NoError(t, err)
		require.NotEmpty(t, records)

		metrics, err := AggregateMeeting(records, nil)
		require.NoError(t, err)
		assert.Greater(t, metrics.TotalRooms, 0)
		assert.Greater(t, metrics.OverallUtilization, 0.0)
		assert.LessOrEqual(t, metrics.OverallUtilization, 100.0)
	})

	t.Run("workstation sample aggregates cleanly", func(t *testing.T) {
		records, err := GenerateSampleRecords(specs.StudyTypeWorkstation, 42)
		require.NoError(t, err)
		require.NotEmpty(t, records)

		metrics, err := AggregateWorkstationSpec(records)
		require.NoError(t, err)
		assert.Greater(t, metrics.AvgOccupancy, 0.0)
		assert.NotEmpty(t, metrics.OccupancyByFloor)
	})

	t.Run("with invalid study type returns error", func(t *testing.T) {
		_, err := GenerateSampleRecords("hot_desk", 42)

		require.Error(t, err)
	})
}
