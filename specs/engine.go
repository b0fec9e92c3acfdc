package specs

// AutoMap guesses which column index corresponds to each semantic field of a
// study type by searching the header row for keyword substrings (case-folded,
// trimmed).
//
// Fields with no matching header are omitted from the result, never assigned
// a sentinel. Deterministic for identical headers. In meeting mode the room
// name keywords deliberately overlap with department keywords: source
// spreadsheets often reuse a "Department" column to mean "Room".
//
// This is the spec-level interface using only primitive types.
// See internal.AutoMap for the reference implementation.
type AutoMap func(headers []string, studyType string) (FieldMappingSpec, error)

// ValidateMapping reports how a mapping fits the first ~10 data rows of the
// raw matrix: which required fields are unmapped, plus soft warnings when the
// mapped status column's samples match no recognized true/false encoding or
// the mapped time column contains neither a colon nor a parseable number.
//
// Warnings are advisory; processing is never blocked on them.
//
// See internal.ValidateMapping for the reference implementation.
type ValidateMapping func(rows [][]any, mapping FieldMappingSpec, studyType string) (MappingValidationSpec, error)

// Transform converts the raw row matrix (row 0 = headers, ignored) plus a
// field mapping into the flat normalized record sequence.
//
// Rows are skipped when their location cell echoes a known header token
// (repeated-header artifacts) or when they carry no usable signal at all.
// Data-quality problems never error: unreadable status cells default to
// unoccupied and are tallied in the result. Re-running with the same mapping
// over the same rows is idempotent.
//
// Errors only on structurally invalid input (no header row at all).
//
// See internal.Transform for the reference implementation.
type Transform func(rows [][]any, mapping FieldMappingSpec, studyType string) (TransformResultSpec, error)

// AggregateMeeting runs the meeting-mode pipeline over normalized records:
// event reconstruction, per-room aggregation and classification, global size
// bins and insights, and the concurrency profile.
//
// userCapacities maps "{floor}::{roomName}" to a positive declared capacity;
// rooms without an entry classify as Unclassified.
//
// See internal.AggregateMeeting for the reference implementation.
type AggregateMeeting func(records []ObservationRecordSpec, userCapacities map[string]int) (UtilizationMetricsSpec, error)

// AggregateWorkstation runs the desk-sweep pipeline: overall average and peak
// occupancy plus per-time-slot and per-floor occupancy profiles.
//
// See internal.AggregateWorkstation for the reference implementation.
type AggregateWorkstation func(records []ObservationRecordSpec) (UtilizationMetricsSpec, error)

// ComputeConcurrency builds the room-concurrency timeline for the records,
// optionally restricted to one room type. Standalone so callers can
// recompute filtered views without re-running full aggregation.
//
// See internal.ComputeConcurrency for the reference implementation.
type ComputeConcurrency func(records []ObservationRecordSpec, roomTypeFilter string) (ConcurrencyStatsSpec, error)
