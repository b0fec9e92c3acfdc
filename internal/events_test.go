package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructEvents(t *testing.T) {
	t.Run("groups attendee rows of one slot into one event", func(t *testing.T) {
		records := []Record{
			{ID: "mtg-1", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 1},
			{ID: "mtg-2", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 1},
			{ID: "mtg-3", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 1},
		}

		events := ReconstructEvents(records)

		require.Len(t, events, 1)
		event := events[0]
		assert.Equal(t, "L10::Meet 01::1::2::09:00", event.EventID)
		assert.Equal(t, 3, event.Attendees)
		assert.True(t, event.Occupied)
		assert.Equal(t, []string{"mtg-1", "mtg-2", "mtg-3"}, event.SourceRowIDs)
	})

	t.Run("distinct slots produce distinct events in first-seen order", func(t *testing.T) {
		records := []Record{
			{ID: "mtg-1", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 2},
			{ID: "mtg-2", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:30", IsOccupied: true, AttendeeCount: 5},
			{ID: "mtg-3", Floor: "L11", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: false},
		}

		events := ReconstructEvents(records)

		require.Len(t, events, 3)
		assert.Equal(t, "L10::Meet 01::1::2::09:00", events[0].EventID)
		assert.Equal(t, "L10::Meet 01::1::2::09:30", events[1].EventID)
		assert.Equal(t, "L11::Meet 01::1::2::09:00", events[2].EventID)
	})

	t.Run("occupied member with zero count still adds one attendee", func(t *testing.T) {
		records := []Record{
			{ID: "mtg-1", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 0},
		}

		events := ReconstructEvents(records)

		require.Len(t, events, 1)
		assert.Equal(t, 1, events[0].Attendees)
	})

	t.Run("unoccupied members contribute only their row id", func(t *testing.T) {
		records := []Record{
			{ID: "mtg-1", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: false},
			{ID: "mtg-2", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 2},
		}

		events := ReconstructEvents(records)

		require.Len(t, events, 1)
		assert.Equal(t, 2, events[0].Attendees)
		assert.Equal(t, []string{"mtg-1", "mtg-2"}, events[0].SourceRowIDs)
	})

	t.Run("vacant slot stays an observed but unoccupied event", func(t *testing.T) {
		records := []Record{
			{ID: "mtg-1", Floor: "L10", RoomName: "Meet 01", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: false},
		}

		events := ReconstructEvents(records)

		require.Len(t, events, 1)
		assert.False(t, events[0].Occupied)
		assert.Equal(t, 0, events[0].Attendees)
		assert.False(t, events[0].IsOccupiedWithAttendees())
	})

	t.Run("missing room fields fall back to defaults", func(t *testing.T) {
		records := []Record{
			{ID: "mtg-1", Floor: "L10", Week: 1, Day: 2, TimeSlot: "09:00", IsOccupied: true, AttendeeCount: 2},
		}

		events := ReconstructEvents(records)

		require.Len(t, events, 1)
		assert.Equal(t, "Unknown", events[0].RoomName)
		assert.Equal(t, "General", events[0].RoomType)
	})
}

func TestIsOccupiedWithAttendees(t *testing.T) {
	t.Run("occupied flag without attendees does not count", func(t *testing.T) {
		event := MeetingEvent{Occupied: true, Attendees: 0}

		assert.False(t, event.IsOccupiedWithAttendees())
	})

	t.Run("occupied with attendees counts", func(t *testing.T) {
		event := MeetingEvent{Occupied: true, Attendees: 3}

		assert.True(t, event.IsOccupiedWithAttendees())
	})
}
