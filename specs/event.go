package specs

// MeetingEventSpec is a reconstructed unit of meeting-room occupancy: one
// room, one time slot, one day/week.
//
// Meeting logs arrive flattened — one row per attendee — so events are
// rebuilt by grouping records on (floor, room, week, day, time slot). The
// attendee total sums the counts of member records that were individually
// marked occupied.
//
// An event can carry Occupied=true with Attendees=0 when a contributing row
// claimed occupancy but supplied no usable headcount signal upstream of the
// transform defaults; such events are observed slots but never count toward
// size histograms or occupied-slot totals.
type MeetingEventSpec struct {
	// Composite key "{floor}::{room}::{week}::{day}::{time}".
	EventID string `json:"eventId"`

	Floor    string `json:"floor"`
	RoomName string `json:"roomName"`
	RoomType string `json:"roomType"`

	// 0 when the study did not record a week/day for the slot.
	Week int `json:"week"`
	Day  int `json:"day"`

	// Time-slot label, verbatim from the records.
	Time string `json:"time"`

	// Sum of attendee counts across occupied member records. Never negative.
	Attendees int `json:"attendees"`

	// True when at least one member record was marked occupied.
	Occupied bool `json:"occupied"`

	// IDs of every observation record that contributed to this event, for
	// drill-down from aggregates back to source rows.
	SourceRowIDs []string `json:"sourceRowIds"`
}
