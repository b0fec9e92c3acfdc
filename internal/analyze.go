package internal

import (
	"fmt"

	"workplace-utilization/specs"
)

// TransformSpec implements specs.Transform.
// Converts raw rows + mapping into the normalized observation record set.
func TransformSpec(rows [][]any, mapping specs.FieldMappingSpec, studyType string) (specs.TransformResultSpec, error) {
	result, err := Transform(rows, mapping, studyType)
	if err != nil {
		return specs.TransformResultSpec{}, err
	}
	return result.ToSpec(), nil
}

// AggregateMeeting implements specs.AggregateMeeting.
// Converts specs to domain objects, runs the meeting pipeline, and converts
// the results back to specs.
//
// Pipeline: reconstruct events → fold per-room metrics + global accumulators
// → classify rooms → global bins and insights → concurrency profile. Empty
// input yields empty aggregates, never an error.
func AggregateMeeting(recordSpecs []specs.ObservationRecordSpec, userCapacities map[string]int) (specs.UtilizationMetricsSpec, error) {
	records := newRecords(recordSpecs)

	events := ReconstructEvents(records)
	roomMetrics, global := aggregateRooms(events, userCapacities)

	totalObservations := 0
	for _, room := range roomMetrics {
		totalObservations += room.ObservedSlots
	}

	overallUtilization := 0.0
	if totalObservations > 0 {
		overallUtilization = float64(global.totalOccupiedEvents) / float64(totalObservations) * 100
	}
	overallAvgAttendees := 0.0
	if global.totalOccupiedEvents > 0 {
		overallAvgAttendees = float64(global.grandTotalAttendees) / float64(global.totalOccupiedEvents)
	}

	concurrency := ComputeConcurrency(records, "")

	return specs.UtilizationMetricsSpec{
		OccupancyByTime:     []specs.OccupancyRateSpec{},
		OccupancyByFloor:    []specs.OccupancyRateSpec{},
		RoomMetrics:         roomMetrics,
		TotalObservations:   totalObservations,
		TotalRooms:          len(roomMetrics),
		OverallUtilization:  overallUtilization,
		OverallAvgAttendees: overallAvgAttendees,
		GlobalSizeBins:      buildGlobalSizeBins(global),
		GlobalInsights:      buildGlobalInsights(global),
		Concurrency:         &concurrency,
	}, nil
}

// AggregateWorkstationSpec implements specs.AggregateWorkstation.
func AggregateWorkstationSpec(recordSpecs []specs.ObservationRecordSpec) (specs.UtilizationMetricsSpec, error) {
	return AggregateWorkstation(newRecords(recordSpecs)), nil
}

// ComputeConcurrencySpec implements specs.ComputeConcurrency.
// Standalone so callers can recompute room-type-filtered views against the
// same record snapshot; the engine mutates nothing, so filtered views may
// run concurrently.
func ComputeConcurrencySpec(recordSpecs []specs.ObservationRecordSpec, roomTypeFilter string) (specs.ConcurrencyStatsSpec, error) {
	return ComputeConcurrency(newRecords(recordSpecs), roomTypeFilter), nil
}

// RoomCapacityKey builds the "{floor}::{roomName}" key under which user
// capacities are declared.
func RoomCapacityKey(floor, roomName string) string {
	return fmt.Sprintf("%s::%s", floor, roomName)
}
