package internal

import (
	"fmt"
	"math"
	"sort"

	"workplace-utilization/specs"
)

// sizeBin buckets an attendee count into one of the six fixed size labels.
func sizeBin(attendees int) string {
	switch {
	case attendees == 1:
		return "1p"
	case attendees == 2:
		return "2p"
	case attendees >= 3 && attendees <= 4:
		return "3-4p"
	case attendees >= 5 && attendees <= 7:
		return "5-7p"
	case attendees >= 8 && attendees <= 11:
		return "8-11p"
	case attendees >= 12:
		return "12p+"
	}
	return "0p"
}

// binTypicalValue maps a size bin to its representative attendee value
// (the bucket midpoint) used by the classification procedure.
func binTypicalValue(label string) float64 {
	switch label {
	case "1p":
		return 1
	case "2p":
		return 2
	case "3-4p":
		return 3.5
	case "5-7p":
		return 6
	case "8-11p":
		return 9.5
	case "12p+":
		return 12
	}
	return 0
}

// Capacity-fit bands by attendees/capacity.
const (
	fitLowBound = 0.40
	fitMidBound = 0.70
)

// roomStats accumulates per-room counters during aggregation. One owned
// accumulator per room; nothing is shared across rooms.
type roomStats struct {
	floor string
	name  string
	typ   string

	observedSlots  int
	occupiedSlots  int
	totalAttendees int

	sizeCounts   map[int]int
	binCounts    map[string]int
	eventsBySize map[int][]MeetingEvent

	fitLow  []MeetingEvent
	fitMid  []MeetingEvent
	fitFit  []MeetingEvent
	fitOver []MeetingEvent
}

// globalStats accumulates study-wide counters across every room.
type globalStats struct {
	binCounts           map[string]int
	totalOccupiedEvents int
	grandTotalAttendees int
}

func newGlobalStats() *globalStats {
	binCounts := make(map[string]int, len(specs.SizeBinLabels))
	for _, label := range specs.SizeBinLabels {
		binCounts[label] = 0
	}
	return &globalStats{binCounts: binCounts}
}

// aggregateRooms folds reconstructed events into per-room performance
// metrics plus the study-wide accumulators feeding global bins and insights.
//
// userCapacities maps "{floor}::{roomName}" to a declared capacity. Rooms
// come back in first-seen event order.
func aggregateRooms(events []MeetingEvent, userCapacities map[string]int) ([]specs.RoomPerformanceMetricSpec, *globalStats) {
	byRoom := make(map[string]*roomStats)
	var order []string
	global := newGlobalStats()

	for _, event := range events {
		roomKey := RoomCapacityKey(event.Floor, event.RoomName)

		stats, ok := byRoom[roomKey]
		if !ok {
			stats = &roomStats{
				floor:        event.Floor,
				name:         event.RoomName,
				typ:          event.RoomType,
				sizeCounts:   map[int]int{},
				binCounts:    map[string]int{},
				eventsBySize: map[int][]MeetingEvent{},
			}
			byRoom[roomKey] = stats
			order = append(order, roomKey)
		}

		stats.observedSlots++

		if !event.IsOccupiedWithAttendees() {
			continue
		}

		stats.occupiedSlots++
		stats.totalAttendees += event.Attendees
		global.totalOccupiedEvents++
		global.grandTotalAttendees += event.Attendees

		size := event.Attendees
		stats.sizeCounts[size]++
		stats.eventsBySize[size] = append(stats.eventsBySize[size], event)

		bin := sizeBin(size)
		stats.binCounts[bin]++
		global.binCounts[bin]++

		if capacity := userCapacities[roomKey]; capacity > 0 {
			ratio := float64(event.Attendees) / float64(capacity)
			switch {
			case ratio < fitLowBound:
				stats.fitLow = append(stats.fitLow, event)
			case ratio < fitMidBound:
				stats.fitMid = append(stats.fitMid, event)
			case ratio <= 1.0:
				stats.fitFit = append(stats.fitFit, event)
			default:
				stats.fitOver = append(stats.fitOver, event)
			}
		}
	}

	metrics := make([]specs.RoomPerformanceMetricSpec, 0, len(order))
	for _, roomKey := range order {
		metrics = append(metrics, buildRoomMetric(byRoom[roomKey], userCapacities[roomKey]))
	}
	return metrics, global
}

func buildRoomMetric(stats *roomStats, capacity int) specs.RoomPerformanceMetricSpec {
	breakdown := buildSizeBreakdown(stats)

	avgOccupancy := 0.0
	if stats.occupiedSlots > 0 {
		avgOccupancy = float64(stats.totalAttendees) / float64(stats.occupiedSlots)
	}
	avgRounded := int(math.Round(avgOccupancy))

	typicalBin, maxBinCount := modalBin(stats.binCounts)
	typicalValue := binTypicalValue(typicalBin)
	typicalRounded := int(math.Round(typicalValue))

	modePct := 0.0
	if stats.occupiedSlots > 0 {
		modePct = float64(maxBinCount) / float64(stats.occupiedSlots) * 100
	}
	topMeetingSize := "-"
	if typicalValue > 0 {
		topMeetingSize = fmt.Sprintf("%s (%.0f%%)", typicalBin, modePct)
	}

	classification, rule, avgRatio, typicalRatio := classify(capacity, stats.occupiedSlots, avgRounded, typicalRounded)

	utilizationPct := 0.0
	if stats.observedSlots > 0 {
		utilizationPct = float64(stats.occupiedSlots) / float64(stats.observedSlots) * 100
	}

	return specs.RoomPerformanceMetricSpec{
		Floor:            stats.floor,
		RoomName:         stats.name,
		RoomType:         stats.typ,
		Capacity:         capacity,
		ObservedSlots:    stats.observedSlots,
		OccupiedSlots:    stats.occupiedSlots,
		UtilizationPct:   utilizationPct,
		AvgOccupancy:     avgOccupancy,
		SizeDistribution: copyBinCounts(stats.binCounts),
		SizeBreakdown:    breakdown,
		TopMeetingSize:   topMeetingSize,
		Classification:   classification,
		Analysis: specs.AnalysisTraceSpec{
			AvgOccRaw:      avgOccupancy,
			AvgOccRounded:  avgRounded,
			AvgRatio:       avgRatio,
			TypicalBin:     typicalBin,
			TypicalValue:   typicalValue,
			TypicalRounded: typicalRounded,
			TypicalRatio:   typicalRatio,
			StatusRule:     rule,
		},
		CapacityFit: specs.CapacityFitSpec{
			Low:  fitBucket(stats.fitLow, stats.occupiedSlots),
			Mid:  fitBucket(stats.fitMid, stats.occupiedSlots),
			Fit:  fitBucket(stats.fitFit, stats.occupiedSlots),
			Over: fitBucket(stats.fitOver, stats.occupiedSlots),
		},
	}
}

// classify is the deterministic decision procedure mapping a room's rounded
// average occupancy and rounded typical size (both against capacity) to a
// utilization class.
//
// Both ratios must agree on a band for a clean class:
//
//	either > 1.00          → Over Capacity Risk
//	both   < 0.50          → Underutilized / Size Mismatch
//	both in [0.50, 0.80)   → Reasonably Utilized
//	both in [0.80, 1.00]   → Over Utilized
//	otherwise              → Mixed Pattern / Review Required
//
// Rounding happens before dividing by capacity; dividing first would shift
// boundary outcomes.
func classify(capacity, occupiedSlots, avgRounded, typicalRounded int) (classification, rule string, avgRatio, typicalRatio float64) {
	if capacity <= 0 {
		return specs.ClassificationUnclassified, "Missing Capacity", 0, 0
	}
	if occupiedSlots == 0 {
		// Observed slots but no evidence of use against a known capacity.
		return specs.ClassificationUnderutilized, "No Usage", 0, 0
	}

	avgRatio = float64(avgRounded) / float64(capacity)
	typicalRatio = float64(typicalRounded) / float64(capacity)

	switch {
	case avgRatio > 1.0 || typicalRatio > 1.0:
		return specs.ClassificationOverCapacity, "Avg or Typical > 100%", avgRatio, typicalRatio
	case avgRatio < 0.50 && typicalRatio < 0.50:
		return specs.ClassificationUnderutilized, "Both Metrics < 50%", avgRatio, typicalRatio
	case avgRatio >= 0.50 && avgRatio < 0.80 && typicalRatio >= 0.50 && typicalRatio < 0.80:
		return specs.ClassificationReasonable, "Both Metrics 50-79%", avgRatio, typicalRatio
	case avgRatio >= 0.80 && avgRatio <= 1.0 && typicalRatio >= 0.80 && typicalRatio <= 1.0:
		return specs.ClassificationOverUtilized, "Both Metrics 80-100%", avgRatio, typicalRatio
	}
	return specs.ClassificationMixed, "Metrics in different bands", avgRatio, typicalRatio
}

// modalBin returns the most frequent size bin and its count. Ties break to
// the first bucket reaching the maximum, in fixed bucket order.
func modalBin(binCounts map[string]int) (string, int) {
	best := ""
	bestCount := 0
	for _, label := range specs.SizeBinLabels {
		if count := binCounts[label]; count > bestCount {
			best = label
			bestCount = count
		}
	}
	return best, bestCount
}

func buildSizeBreakdown(stats *roomStats) []specs.RoomSizeBreakdownSpec {
	sizes := make([]int, 0, len(stats.sizeCounts))
	for size := range stats.sizeCounts {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	breakdown := make([]specs.RoomSizeBreakdownSpec, 0, len(sizes))
	for _, size := range sizes {
		count := stats.sizeCounts[size]
		pct := 0.0
		if stats.occupiedSlots > 0 {
			pct = float64(count) / float64(stats.occupiedSlots) * 100
		}

		events := append([]MeetingEvent{}, stats.eventsBySize[size]...)
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Day != events[j].Day {
				return events[i].Day < events[j].Day
			}
			return events[i].Time < events[j].Time
		})

		breakdown = append(breakdown, specs.RoomSizeBreakdownSpec{
			Floor:        stats.floor,
			RoomName:     stats.name,
			Size:         size,
			Count:        count,
			OccupancyPct: pct,
			Events:       eventsToSpecs(events),
		})
	}
	return breakdown
}

func fitBucket(events []MeetingEvent, occupiedSlots int) specs.CapacityFitBucketSpec {
	pct := 0.0
	if occupiedSlots > 0 {
		pct = float64(len(events)) / float64(occupiedSlots) * 100
	}
	return specs.CapacityFitBucketSpec{
		Count:  len(events),
		Pct:    pct,
		Events: eventsToSpecs(events),
	}
}

func copyBinCounts(binCounts map[string]int) map[string]int {
	out := make(map[string]int, len(binCounts))
	for label, count := range binCounts {
		out[label] = count
	}
	return out
}
