package specs

// Study types supported by the engine.
const (
	StudyTypeWorkstation = "workstation"
	StudyTypeMeeting     = "meeting"
)

// Semantic field keys used in field mappings.
const (
	FieldDate          = "date"
	FieldTimeSlot      = "timeSlot"
	FieldFloor         = "floor"
	FieldWeek          = "week"
	FieldDay           = "day"
	FieldIsOccupied    = "isOccupied"
	FieldDepartment    = "department"
	FieldRoomName      = "roomName"
	FieldRoomType      = "roomType"
	FieldCapacity      = "capacity"
	FieldAttendeeCount = "attendeeCount"
)

// FieldMappingSpec maps a semantic field key to a zero-based column index in
// the raw matrix.
//
// Produced by AutoMap from header keywords, optionally edited upstream before
// Transform runs. Fields with no matching column are simply absent from the
// map — never present with a sentinel index. An absent field degrades the
// metrics that depend on it but never blocks processing.
type FieldMappingSpec map[string]int

// FieldDescriptorSpec describes one semantic field for a study type.
type FieldDescriptorSpec struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// WorkstationFields lists the semantic fields of a desk-sweep study.
var WorkstationFields = []FieldDescriptorSpec{
	{Key: FieldFloor, Label: "Level / Floor", Required: true},
	{Key: FieldDepartment, Label: "Department (Team)", Required: false},
	{Key: FieldDate, Label: "Date", Required: true},
	{Key: FieldTimeSlot, Label: "Time Slot", Required: true},
	{Key: FieldIsOccupied, Label: "Status (Occupied?)", Required: true},
}

// MeetingFields lists the semantic fields of a meeting-room study.
var MeetingFields = []FieldDescriptorSpec{
	{Key: FieldFloor, Label: "Level / Floor", Required: true},
	{Key: FieldRoomName, Label: "Room Name", Required: true},
	{Key: FieldRoomType, Label: "Space Type", Required: true},
	{Key: FieldCapacity, Label: "Capacity (Marker)", Required: false},
	{Key: FieldWeek, Label: "Week", Required: false},
	{Key: FieldDay, Label: "Day", Required: true},
	{Key: FieldTimeSlot, Label: "Time Slot", Required: true},
	{Key: FieldIsOccupied, Label: "Status", Required: true},
	{Key: FieldAttendeeCount, Label: "Occupancy (Count)", Required: false},
}

// MappingValidationSpec reports how well a mapping fits sampled data.
//
// Validation never blocks processing; it exists so an upstream mapping-review
// surface can flag required fields that are unmapped and columns whose
// sampled values look wrong for the field they were assigned to.
type MappingValidationSpec struct {
	IsValid       bool     `json:"isValid"`
	MissingFields []string `json:"missingFields"`
	Warnings      []string `json:"warnings"`
}
