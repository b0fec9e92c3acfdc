package internal

import (
	"fmt"
	"strings"

	"workplace-utilization/specs"
)

// Record is the domain form of a normalized observation row.
type Record struct {
	ID         string
	Date       string
	TimeSlot   string
	Floor      string
	IsOccupied bool
	Week       int
	Day        int

	// Workstation mode.
	Department string

	// Meeting mode.
	RoomName      string
	RoomType      string
	AttendeeCount int
}

// NewRecord converts a record spec into the domain form.
// Data-quality oddities are tolerated, not rejected; the only normalization
// applied is clamping a negative attendee count to zero.
func NewRecord(spec specs.ObservationRecordSpec) Record {
	attendees := spec.AttendeeCount
	if attendees < 0 {
		attendees = 0
	}
	return Record{
		ID:            spec.ID,
		Date:          spec.Date,
		TimeSlot:      spec.TimeSlot,
		Floor:         spec.Floor,
		IsOccupied:    spec.IsOccupied,
		Week:          spec.Week,
		Day:           spec.Day,
		Department:    spec.Department,
		RoomName:      spec.RoomName,
		RoomType:      spec.RoomType,
		AttendeeCount: attendees,
	}
}

// ToSpec converts a domain record back to its spec form.
func (r Record) ToSpec() specs.ObservationRecordSpec {
	return specs.ObservationRecordSpec{
		ID:            r.ID,
		Date:          r.Date,
		TimeSlot:      r.TimeSlot,
		Floor:         r.Floor,
		IsOccupied:    r.IsOccupied,
		Week:          r.Week,
		Day:           r.Day,
		Department:    r.Department,
		RoomName:      r.RoomName,
		RoomType:      r.RoomType,
		AttendeeCount: r.AttendeeCount,
	}
}

func newRecords(rs []specs.ObservationRecordSpec) []Record {
	records := make([]Record, len(rs))
	for i, spec := range rs {
		records[i] = NewRecord(spec)
	}
	return records
}

// headerEchoTokens are location values that mark a repeated-header artifact
// rather than data. Spreadsheets exported from reporting tools often restate
// the header row every page break.
var headerEchoTokens = map[string]bool{
	"level": true, "floor": true, "department": true, "room": true,
	"type": true, "capacity": true, "status": true, "occupancy": true,
	"week": true, "day": true, "time": true,
}

// isHeaderEcho reports whether a location value matches a known header token.
func isHeaderEcho(floor string) bool {
	return headerEchoTokens[strings.ToLower(strings.TrimSpace(floor))]
}

// isSignalFree reports whether a row carries no usable signal at all:
// no location, no date, and no time slot.
func isSignalFree(floor, date, timeSlot string) bool {
	return floor == unknownFloor && timeSlot == "" && date == ""
}

const (
	unknownFloor    = "Unknown"
	unknownDate     = "Unknown Date"
	unknownTime     = "Unknown Time"
	defaultDept     = "Unassigned"
	defaultRoomType = "Meeting Room"
)

// TransformResult is the domain output of a normalization pass.
type TransformResult struct {
	Records                []Record
	UnrecognizedStatusRows int
}

// ToSpec converts the result to its spec form.
func (t TransformResult) ToSpec() specs.TransformResultSpec {
	records := make([]specs.ObservationRecordSpec, len(t.Records))
	for i, r := range t.Records {
		records[i] = r.ToSpec()
	}
	return specs.TransformResultSpec{
		Records:                records,
		UnrecognizedStatusRows: t.UnrecognizedStatusRows,
	}
}

// Transform converts the raw row matrix into the normalized record sequence.
//
// Row 0 is the header row and is ignored. Every mapped field is resolved by
// pre-registered column index; unmapped fields resolve to nil and take their
// documented defaults. Header-echo rows and signal-free rows are skipped.
// The output fully replaces any previous record sequence — reprocessing is
// from scratch, never incremental.
func Transform(rows [][]any, mappingSpec specs.FieldMappingSpec, studyType string) (TransformResult, error) {
	st, err := NewStudyType(studyType)
	if err != nil {
		return TransformResult{}, err
	}
	mapping, err := NewMapping(mappingSpec)
	if err != nil {
		return TransformResult{}, fmt.Errorf("invalid mapping: %w", err)
	}
	if rows == nil {
		return TransformResult{}, fmt.Errorf("raw data is not a matrix of rows")
	}
	if len(rows) == 0 {
		return TransformResult{}, fmt.Errorf("raw data has no header row")
	}

	result := TransformResult{}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		date := cellString(mapping.cell(row, specs.FieldDate))
		timeSlot := cellString(mapping.cell(row, specs.FieldTimeSlot))
		floor := strings.TrimSpace(cellString(mapping.cell(row, specs.FieldFloor)))
		if floor == "" {
			floor = unknownFloor
		}
		week, _ := parseCellInt(mapping.cell(row, specs.FieldWeek))
		day, _ := parseCellInt(mapping.cell(row, specs.FieldDay))

		if isHeaderEcho(floor) {
			continue
		}
		if isSignalFree(floor, date, timeSlot) {
			continue
		}

		statusCell := mapping.cell(row, specs.FieldIsOccupied)
		isOccupied, recognized := parseStatus(statusCell)
		if !recognized && strings.TrimSpace(cellString(statusCell)) != "" {
			result.UnrecognizedStatusRows++
		}

		if st.IsWorkstation() {
			result.Records = append(result.Records, Record{
				ID:         fmt.Sprintf("obs-%d", i),
				Date:       orDefault(date, unknownDate),
				TimeSlot:   orDefault(timeSlot, unknownTime),
				Floor:      floor,
				Department: orDefault(cellString(mapping.cell(row, specs.FieldDepartment)), defaultDept),
				IsOccupied: isOccupied,
				Week:       week,
				Day:        day,
			})
			continue
		}

		// Meeting mode: each row represents attendees at one room slot.
		attendees := 0
		if isOccupied {
			if n, ok := parseCellInt(mapping.cell(row, specs.FieldAttendeeCount)); ok && n > 0 {
				attendees = n
			} else {
				// One row = one person when no usable count is present.
				attendees = 1
			}
		}

		if timeSlot == "" && day == 0 && week == 0 && floor == unknownFloor {
			continue
		}
		result.Records = append(result.Records, Record{
			ID:            fmt.Sprintf("mtg-%d", i),
			Date:          date,
			TimeSlot:      orDefault(timeSlot, unknownTime),
			Floor:         floor,
			RoomName:      orDefault(cellString(mapping.cell(row, specs.FieldRoomName)), fmt.Sprintf("Room %d", i)),
			RoomType:      orDefault(cellString(mapping.cell(row, specs.FieldRoomType)), defaultRoomType),
			AttendeeCount: attendees,
			IsOccupied:    isOccupied,
			Week:          week,
			Day:           day,
		})
	}

	return result, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
