package internal

import (
	"sort"

	"workplace-utilization/specs"
)

// occupancyCounter tallies observed vs occupied readings within one group.
type occupancyCounter struct {
	total    int
	occupied int
}

func (c occupancyCounter) rate() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.occupied) / float64(c.total) * 100
}

// AggregateWorkstation computes the desk-sweep metrics: overall average
// occupancy, peak rate across time-slot groups, and per-time-slot and
// per-floor occupancy profiles. No event reconstruction — every record is a
// single desk reading.
func AggregateWorkstation(records []Record) specs.UtilizationMetricsSpec {
	total := len(records)
	occupied := 0
	for _, r := range records {
		if r.IsOccupied {
			occupied++
		}
	}
	avgOccupancy := 0.0
	if total > 0 {
		avgOccupancy = float64(occupied) / float64(total) * 100
	}

	byTime, timeOrder := groupCounters(records, func(r Record) string { return r.TimeSlot })
	sort.Strings(timeOrder)

	peak := 0.0
	occupancyByTime := make([]specs.OccupancyRateSpec, 0, len(timeOrder))
	for _, slot := range timeOrder {
		rate := byTime[slot].rate()
		if rate > peak {
			peak = rate
		}
		occupancyByTime = append(occupancyByTime, specs.OccupancyRateSpec{Label: slot, Rate: rate})
	}

	byFloor, floorOrder := groupCounters(records, func(r Record) string { return r.Floor })
	occupancyByFloor := make([]specs.OccupancyRateSpec, 0, len(floorOrder))
	for _, floor := range floorOrder {
		occupancyByFloor = append(occupancyByFloor, specs.OccupancyRateSpec{Label: floor, Rate: byFloor[floor].rate()})
	}

	return specs.UtilizationMetricsSpec{
		AvgOccupancy:       avgOccupancy,
		PeakOccupancy:      peak,
		OccupancyByTime:    occupancyByTime,
		OccupancyByFloor:   occupancyByFloor,
		RoomMetrics:        []specs.RoomPerformanceMetricSpec{},
		TotalObservations:  total,
		OverallUtilization: avgOccupancy,
		GlobalSizeBins:     []specs.GlobalSizeBinSpec{},
		GlobalInsights:     []string{},
	}
}

// groupCounters folds records into occupancy counters keyed by the given
// label, returning the counters plus first-seen key order.
func groupCounters(records []Record, label func(Record) string) (map[string]*occupancyCounter, []string) {
	counters := make(map[string]*occupancyCounter)
	var order []string
	for _, r := range records {
		key := label(r)
		c, ok := counters[key]
		if !ok {
			c = &occupancyCounter{}
			counters[key] = c
			order = append(order, key)
		}
		c.total++
		if r.IsOccupied {
			c.occupied++
		}
	}
	return counters, order
}
