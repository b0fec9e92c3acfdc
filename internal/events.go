package internal

import (
	"fmt"

	"workplace-utilization/specs"
)

// MeetingEvent is one reconstructed occupancy unit: one room, one time slot,
// one day/week. Never mutated after reconstruction.
type MeetingEvent struct {
	EventID      string
	Floor        string
	RoomName     string
	RoomType     string
	Week         int
	Day          int
	Time         string
	Attendees    int
	Occupied     bool
	SourceRowIDs []string
}

// IsOccupiedWithAttendees reports whether the event counts as an occupied
// slot. A row can claim occupied=true yet contribute zero attendees; such
// events are observed but never occupied for histogram purposes.
func (e MeetingEvent) IsOccupiedWithAttendees() bool {
	return e.Occupied && e.Attendees > 0
}

func (e MeetingEvent) ToSpec() specs.MeetingEventSpec {
	return specs.MeetingEventSpec{
		EventID:      e.EventID,
		Floor:        e.Floor,
		RoomName:     e.RoomName,
		RoomType:     e.RoomType,
		Week:         e.Week,
		Day:          e.Day,
		Time:         e.Time,
		Attendees:    e.Attendees,
		Occupied:     e.Occupied,
		SourceRowIDs: e.SourceRowIDs,
	}
}

func eventsToSpecs(events []MeetingEvent) []specs.MeetingEventSpec {
	out := make([]specs.MeetingEventSpec, len(events))
	for i, e := range events {
		out[i] = e.ToSpec()
	}
	return out
}

// ReconstructEvents groups flat per-attendee records into discrete meeting
// events keyed by (floor, room, week, day, time slot).
//
// The attendee total sums counts of member records individually marked
// occupied; unoccupied members contribute only their row ID. Events come
// back in first-seen order, so reconstruction is deterministic for a given
// record sequence.
func ReconstructEvents(records []Record) []MeetingEvent {
	byKey := make(map[string]*MeetingEvent)
	var order []string

	for _, r := range records {
		key := fmt.Sprintf("%s::%s::%d::%d::%s", r.Floor, r.RoomName, r.Week, r.Day, r.TimeSlot)

		event, ok := byKey[key]
		if !ok {
			event = &MeetingEvent{
				EventID:  key,
				Floor:    r.Floor,
				RoomName: orDefault(r.RoomName, "Unknown"),
				RoomType: orDefault(r.RoomType, "General"),
				Week:     r.Week,
				Day:      r.Day,
				Time:     r.TimeSlot,
			}
			byKey[key] = event
			order = append(order, key)
		}

		event.SourceRowIDs = append(event.SourceRowIDs, r.ID)
		if r.IsOccupied {
			event.Occupied = true
			n := r.AttendeeCount
			if n == 0 {
				n = 1
			}
			event.Attendees += n
		}
	}

	events := make([]MeetingEvent, 0, len(order))
	for _, key := range order {
		events = append(events, *byKey[key])
	}
	return events
}
