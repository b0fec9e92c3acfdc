package specs

// Utilization classifications assigned to a room after aggregation.
//
// Classification is a pure function of the user-declared capacity, the
// rounded average occupancy, and the rounded typical (modal-bin) size; see
// AnalysisTraceSpec for the intermediate values that drove the decision.
const (
	ClassificationUnclassified  = "Unclassified"
	ClassificationUnderutilized = "Underutilized / Size Mismatch"
	ClassificationReasonable    = "Reasonably Utilized"
	ClassificationOverUtilized  = "Over Utilized"
	ClassificationOverCapacity  = "Over Capacity Risk"
	ClassificationMixed         = "Mixed Pattern / Review Required"
)

// SizeBinLabels are the six fixed attendee-size buckets, in display order.
// Every occupied event lands in exactly one bucket.
var SizeBinLabels = []string{"1p", "2p", "3-4p", "5-7p", "8-11p", "12p+"}

// RoomSizeBreakdownSpec counts the occupied events of one room at one exact
// attendee size.
//
// Invariant: summing Count over all sizes of a room equals the room's
// occupied-slot total, and the occupancy percentages sum to ~100 (within
// rounding) whenever the room has at least one occupied event.
type RoomSizeBreakdownSpec struct {
	Floor    string `json:"floor"`
	RoomName string `json:"roomName"`

	// Exact attendee count this row describes.
	Size int `json:"size"`

	// Occupied events observed at exactly this size.
	Count int `json:"count"`

	// Count as a percentage of the room's occupied events.
	OccupancyPct float64 `json:"occupancyPct"`

	// The events behind Count, ordered by day then time label.
	Events []MeetingEventSpec `json:"events"`
}

// AnalysisTraceSpec records the intermediate values of the classification
// decision so the outcome can be audited without re-running aggregation.
//
// Both ratios divide a rounded integer by capacity — rounding happens before
// the division, which changes boundary outcomes and is part of the contract.
type AnalysisTraceSpec struct {
	AvgOccRaw      float64 `json:"avgOccRaw"`
	AvgOccRounded  int     `json:"avgOccRounded"`
	AvgRatio       float64 `json:"avgRatio"`
	TypicalBin     string  `json:"typicalBin"`
	TypicalValue   float64 `json:"typicalValue"`
	TypicalRounded int     `json:"typicalRounded"`
	TypicalRatio   float64 `json:"typicalRatio"`

	// The textual rule that fired, e.g. "Both Metrics < 50%".
	StatusRule string `json:"statusRule"`
}

// CapacityFitBucketSpec is one band of the per-event capacity-fit analysis.
type CapacityFitBucketSpec struct {
	Count  int                `json:"count"`
	Pct    float64            `json:"pct"`
	Events []MeetingEventSpec `json:"events"`
}

// CapacityFitSpec bands each occupied event by attendees/capacity:
// low < 0.40, mid < 0.70, fit ≤ 1.00, over > 1.00. Populated only for rooms
// with a declared capacity.
type CapacityFitSpec struct {
	Low  CapacityFitBucketSpec `json:"low"`
	Mid  CapacityFitBucketSpec `json:"mid"`
	Fit  CapacityFitBucketSpec `json:"fit"`
	Over CapacityFitBucketSpec `json:"over"`
}

// RoomPerformanceMetricSpec is the per-room output of a meeting study.
type RoomPerformanceMetricSpec struct {
	Floor    string `json:"floor"`
	RoomName string `json:"roomName"`
	RoomType string `json:"roomType"`

	// User-declared maximum headcount; 0 when never supplied. Capacity is
	// only ever used for classification — it is not derived from data.
	Capacity int `json:"capacity"`

	// Every reconstructed event for the room counts as one observed slot.
	ObservedSlots int `json:"observedSlots"`

	// Events that were occupied with at least one attendee.
	OccupiedSlots int `json:"occupiedSlots"`

	// OccupiedSlots / ObservedSlots × 100. Always within [0,100].
	UtilizationPct float64 `json:"utilizationPct"`

	// Mean attendees over occupied events; 0 when none.
	AvgOccupancy float64 `json:"avgOccupancy"`

	// Occupied-event counts per six-bucket size bin label.
	SizeDistribution map[string]int `json:"meetingSizeDistribution"`

	// Exact-size histogram rows, ascending by size.
	SizeBreakdown []RoomSizeBreakdownSpec `json:"sizeBreakdown"`

	// Modal bucket with its share, e.g. "3-4p (60%)"; "-" without data.
	TopMeetingSize string `json:"topMeetingSize"`

	Classification string            `json:"classification"`
	Analysis       AnalysisTraceSpec `json:"analysis"`
	CapacityFit    CapacityFitSpec   `json:"capacityFit"`
}

// GlobalSizeBinSpec is one of the six fixed buckets computed over all rooms'
// occupied events combined. The six bucket counts always sum exactly to the
// study-wide occupied-event total.
type GlobalSizeBinSpec struct {
	Label        string  `json:"label"`
	Count        int     `json:"count"`
	OccupancyPct float64 `json:"occupancyPct"`
}

// ConcurrencyPointSpec is one timeline entry of the concurrency profile.
//
// Total counts the distinct rooms observed at this exact timepoint, not a
// fixed inventory of the whole study — sparse logging can give different
// timepoints different denominators, so percentages are not directly
// comparable across timepoints when coverage is uneven. Both numerator and
// denominator are exposed so callers can renormalize against
// ConcurrencyStatsSpec.UniqueRooms if they need a fixed base.
type ConcurrencyPointSpec struct {
	// Display key "W{week} D{day} {time}".
	Time string `json:"time"`

	// Distinct rooms observed occupied at this timepoint.
	Occupied int `json:"occupied"`

	// Distinct rooms observed at all at this timepoint.
	Total int `json:"total"`

	// Occupied / Total × 100. Always within [0,100].
	Pct float64 `json:"pct"`
}

// ConcurrencyStatsSpec is the chronologically ordered "fraction of rooms in
// use" profile across every distinct (week, day, time-slot) observed.
type ConcurrencyStatsSpec struct {
	AvgPct      float64                `json:"avgPct"`
	MaxPct      float64                `json:"maxPct"`
	Timeline    []ConcurrencyPointSpec `json:"timeline"`
	UniqueRooms int                    `json:"uniqueRoomsCount"`
}

// OccupancyRateSpec is one group of the workstation-mode profiles: the
// occupancy rate within a single time slot or a single floor.
type OccupancyRateSpec struct {
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

// UtilizationMetricsSpec is the aggregate result bundle returned to callers.
//
// Meeting studies populate the room/global/concurrency fields and leave the
// workstation profiles empty; workstation studies do the reverse. Empty
// input yields empty aggregates with zero counts rather than an error — it
// is the caller's job to detect and present the "no records" state.
type UtilizationMetricsSpec struct {
	// Workstation mode.
	AvgOccupancy     float64             `json:"avgOccupancy"`
	PeakOccupancy    float64             `json:"peakOccupancy"`
	OccupancyByTime  []OccupancyRateSpec `json:"occupancyByTime"`
	OccupancyByFloor []OccupancyRateSpec `json:"occupancyByFloor"`

	// Meeting mode.
	RoomMetrics         []RoomPerformanceMetricSpec `json:"roomMetrics"`
	TotalObservations   int                         `json:"totalObservations"`
	TotalRooms          int                         `json:"totalRooms"`
	OverallUtilization  float64                     `json:"overallUtilization"`
	OverallAvgAttendees float64                     `json:"overallAvgAttendees"`
	GlobalSizeBins      []GlobalSizeBinSpec         `json:"globalSizeBins"`
	GlobalInsights      []string                    `json:"globalInsights"`
	Concurrency         *ConcurrencyStatsSpec       `json:"concurrencyStats,omitempty"`
}
