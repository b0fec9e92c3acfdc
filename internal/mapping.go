package internal

import (
	"fmt"
	"strings"

	"workplace-utilization/specs"
)

type StudyType struct {
	value string
}

func NewStudyType(value string) (StudyType, error) {
	if value == "" {
		return StudyType{}, fmt.Errorf("study type is required")
	}
	switch value {
	case specs.StudyTypeWorkstation, specs.StudyTypeMeeting:
		// Valid
	default:
		return StudyType{}, fmt.Errorf("invalid study type: %q", value)
	}
	return StudyType{value: value}, nil
}

func (t StudyType) ToString() string {
	return t.value
}

func (t StudyType) IsWorkstation() bool {
	return t.value == specs.StudyTypeWorkstation
}

func (t StudyType) IsMeeting() bool {
	return t.value == specs.StudyTypeMeeting
}

// Fields returns the field descriptors for this study type.
func (t StudyType) Fields() []specs.FieldDescriptorSpec {
	if t.IsWorkstation() {
		return specs.WorkstationFields
	}
	return specs.MeetingFields
}

// fieldKeywords associates a semantic field with the header substrings that
// identify it. Order matters: fields are resolved in sequence and each takes
// the first header containing any of its keywords.
type fieldKeywords struct {
	key      string
	keywords []string
}

// Fields common to both study types.
var commonFieldKeywords = []fieldKeywords{
	{specs.FieldDate, []string{"date", "timestamp"}},
	{specs.FieldTimeSlot, []string{"time", "slot", "hour", "start", "period"}},
	{specs.FieldFloor, []string{"floor", "level", "zone", "lvl"}},
	{specs.FieldWeek, []string{"week", "wk"}},
	{specs.FieldDay, []string{"day"}},
}

var workstationFieldKeywords = []fieldKeywords{
	{specs.FieldIsOccupied, []string{"occup", "status", "state", "vacan", "activity"}},
	{specs.FieldDepartment, []string{"dept", "department", "team", "group", "cost center"}},
}

// Meeting logs frequently reuse a "Department" column to mean "Room", so the
// room-name keywords overlap with department keywords on purpose.
var meetingFieldKeywords = []fieldKeywords{
	{specs.FieldRoomName, []string{"room", "name", "id", "department", "dept"}},
	{specs.FieldRoomType, []string{"type", "category", "kind"}},
	{specs.FieldCapacity, []string{"cap", "seat", "pax"}},
	{specs.FieldIsOccupied, []string{"status", "state"}},
	{specs.FieldAttendeeCount, []string{"occupancy", "actual", "pax", "people", "count"}},
}

// AutoMap guesses a column index for each semantic field of the study type by
// keyword search over the header row. Pure and deterministic; fields with no
// match are omitted.
func AutoMap(headers []string, studyType string) (specs.FieldMappingSpec, error) {
	st, err := NewStudyType(studyType)
	if err != nil {
		return nil, err
	}

	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = strings.ToLower(strings.TrimSpace(h))
	}

	findIdx := func(keywords []string) int {
		for i, h := range folded {
			for _, k := range keywords {
				if strings.Contains(h, k) {
					return i
				}
			}
		}
		return -1
	}

	fields := commonFieldKeywords
	if st.IsWorkstation() {
		fields = append(append([]fieldKeywords{}, fields...), workstationFieldKeywords...)
	} else {
		fields = append(append([]fieldKeywords{}, fields...), meetingFieldKeywords...)
	}

	mapping := specs.FieldMappingSpec{}
	for _, f := range fields {
		if idx := findIdx(f.keywords); idx >= 0 {
			mapping[f.key] = idx
		}
	}
	return mapping, nil
}

// Mapping is the resolved field mapping used during a normalization pass.
type Mapping struct {
	indices map[string]int
}

func NewMapping(spec specs.FieldMappingSpec) (Mapping, error) {
	indices := make(map[string]int, len(spec))
	for key, idx := range spec {
		if idx < 0 {
			return Mapping{}, fmt.Errorf("field %q mapped to negative column %d", key, idx)
		}
		indices[key] = idx
	}
	return Mapping{indices: indices}, nil
}

// Column returns the column index for a field, and whether it is mapped.
func (m Mapping) Column(field string) (int, bool) {
	idx, ok := m.indices[field]
	return idx, ok
}

// cell resolves a field against a raw row; nil when the field is unmapped or
// the row is too short.
func (m Mapping) cell(row []any, field string) any {
	idx, ok := m.indices[field]
	if !ok || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// validation sampling depth: the first 10 data rows.
const validationSampleRows = 10

// ValidateMapping checks a mapping against sampled data rows.
//
// Reports required fields with no mapped column and soft warnings when the
// sampled status or time values do not look like what the field expects.
// Advisory only — Transform will run regardless.
func ValidateMapping(rows [][]any, mappingSpec specs.FieldMappingSpec, studyType string) (specs.MappingValidationSpec, error) {
	st, err := NewStudyType(studyType)
	if err != nil {
		return specs.MappingValidationSpec{}, err
	}
	mapping, err := NewMapping(mappingSpec)
	if err != nil {
		return specs.MappingValidationSpec{}, err
	}

	var missing []string
	for _, f := range st.Fields() {
		if _, ok := mapping.Column(f.Key); f.Required && !ok {
			missing = append(missing, f.Label)
		}
	}

	sample := sampleRows(rows, validationSampleRows)
	var warnings []string

	if _, ok := mapping.Column(specs.FieldIsOccupied); ok && len(sample) > 0 {
		if !sampleHasRecognizableStatus(sample, mapping) {
			warnings = append(warnings, "Status column values don't look standard (e.g. 'Occupied', '1', 'Yes').")
		}
	}

	if _, ok := mapping.Column(specs.FieldTimeSlot); ok && len(sample) > 0 {
		if !sampleHasTimeLikeValue(sample, mapping) {
			warnings = append(warnings, "Time column doesn't appear to contain time formats.")
		}
	}

	return specs.MappingValidationSpec{
		IsValid:       len(missing) == 0,
		MissingFields: missing,
		Warnings:      warnings,
	}, nil
}

// sampleRows returns up to n data rows, skipping the header row.
func sampleRows(rows [][]any, n int) [][]any {
	if len(rows) <= 1 {
		return nil
	}
	data := rows[1:]
	if len(data) > n {
		data = data[:n]
	}
	return data
}

func sampleHasRecognizableStatus(sample [][]any, mapping Mapping) bool {
	for _, row := range sample {
		val := strings.ToLower(cellString(mapping.cell(row, specs.FieldIsOccupied)))
		if strings.Contains(val, "occ") {
			return true
		}
		switch strings.TrimSpace(val) {
		case "1", "0", "yes", "no":
			return true
		}
	}
	return false
}

func sampleHasTimeLikeValue(sample [][]any, mapping Mapping) bool {
	for _, row := range sample {
		val := cellString(mapping.cell(row, specs.FieldTimeSlot))
		if strings.Contains(val, ":") {
			return true
		}
		if _, ok := parseCellFloat(val); ok && strings.TrimSpace(val) != "" {
			return true
		}
	}
	return false
}
