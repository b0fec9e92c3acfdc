package specs

// ObservationRecordSpec represents one normalized observation row from a
// utilization study.
//
// Records are produced by Transform from a raw spreadsheet matrix and a field
// mapping. Each record captures a single sensor sweep or survey reading: one
// place, one time slot, occupied or not. Records are immutable once created;
// re-applying a mapping rebuilds the full record set from the raw rows rather
// than patching records in place.
//
// Mode-specific fields:
//   - Workstation studies populate Department and leave the room fields empty.
//   - Meeting studies populate RoomName/RoomType/AttendeeCount; each raw row
//     typically represents one attendee, so several records can describe the
//     same meeting slot.
type ObservationRecordSpec struct {
	// Stable identifier derived from the source row position.
	//
	// Used for traceability: reconstructed meeting events carry the IDs of
	// every record that contributed to them. Examples: "obs-12", "mtg-340".
	ID string `json:"id"`

	// Date label as it appeared in the source cell. Not parsed into a real
	// date type; formats vary per study ("2024-01-01", "1/5", "Week 2 Tue").
	Date string `json:"date"`

	// Time-slot label as it appeared in the source cell.
	//
	// Deliberately a string, not a time: sources mix "09:00", bare minutes
	// ("540"), and Excel day fractions ("0.375"). Chronological ordering is
	// derived downstream, best-effort.
	TimeSlot string `json:"timeSlot"`

	// Location / floor label. "Unknown" when the source cell was blank.
	Floor string `json:"floor"`

	// Whether presence was detected for this reading.
	IsOccupied bool `json:"isOccupied"`

	// Week and day numbers when the study logs them; 0 means not recorded.
	Week int `json:"week,omitempty"`
	Day  int `json:"day,omitempty"`

	// Workstation mode only. "Unassigned" when the source cell was blank.
	Department string `json:"department,omitempty"`

	// Meeting mode only.
	RoomName string `json:"roomName,omitempty"`
	RoomType string `json:"roomType,omitempty"`

	// Meeting mode only: attendees this record contributes to its slot.
	//
	// Resolution during transform: the mapped occupancy-count cell when it
	// parses to a positive number; 1 when the row is occupied but carries no
	// usable count (one row = one person); 0 when the row is unoccupied.
	AttendeeCount int `json:"attendeeCount,omitempty"`
}

// TransformResultSpec is the output of a normalization pass.
type TransformResultSpec struct {
	Records []ObservationRecordSpec `json:"records"`

	// Number of rows whose mapped status cell held a non-empty value that
	// matched no recognized true/false encoding and therefore defaulted to
	// unoccupied. Advisory only: a high count suggests the status column
	// uses an encoding the parser does not know, which silently undercounts
	// occupancy.
	UnrecognizedStatusRows int `json:"unrecognizedStatusRows"`
}
