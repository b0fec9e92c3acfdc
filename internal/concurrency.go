package internal

import (
	"fmt"
	"sort"
	"strings"

	"workplace-utilization/specs"
)

// timepoint tracks which rooms were observed, and which were occupied, at one
// distinct (week, day, time-slot) triple.
type timepoint struct {
	week    int
	day     int
	timeStr string

	allRooms      map[string]bool
	occupiedRooms map[string]bool
}

// sortKey composes a chronological ordering value: week outranks day, day
// outranks time of day. The multipliers leave room for 24h of minutes per
// day and ~50 days per week term.
func (t *timepoint) sortKey() float64 {
	return float64(t.week)*100000 + float64(t.day)*2000 + minutesOfDay(t.timeStr)
}

// ComputeConcurrency builds the chronologically ordered "fraction of rooms in
// use" timeline across every distinct timepoint in the record set, optionally
// restricted to one room type.
//
// The percentage denominator is the rooms observed at that exact timepoint,
// not a fixed study-wide inventory: sparse logging gives uneven denominators,
// so each point exposes both counts and UniqueRooms carries the fixed base
// for callers that want to renormalize.
func ComputeConcurrency(records []Record, roomTypeFilter string) specs.ConcurrencyStatsSpec {
	filter := strings.TrimSpace(roomTypeFilter)

	byKey := make(map[string]*timepoint)
	var order []string
	uniqueRooms := make(map[string]bool)

	for _, r := range records {
		if filter != "" && !strings.EqualFold(r.RoomType, filter) {
			continue
		}
		if r.RoomName != "" {
			uniqueRooms[r.RoomName] = true
		}
		if r.TimeSlot == "" {
			continue
		}

		// Missing week/day group under 1 so single-week studies collapse
		// onto one day axis.
		week := r.Week
		if week == 0 {
			week = 1
		}
		day := r.Day
		if day == 0 {
			day = 1
		}
		timeStr := strings.TrimSpace(r.TimeSlot)

		key := fmt.Sprintf("W%d-D%d-%s", week, day, timeStr)
		entry, ok := byKey[key]
		if !ok {
			entry = &timepoint{
				week:          week,
				day:           day,
				timeStr:       timeStr,
				allRooms:      map[string]bool{},
				occupiedRooms: map[string]bool{},
			}
			byKey[key] = entry
			order = append(order, key)
		}

		room := orDefault(r.RoomName, "Unknown")
		entry.allRooms[room] = true
		if r.IsOccupied {
			entry.occupiedRooms[room] = true
		}
	}

	points := make([]*timepoint, 0, len(order))
	for _, key := range order {
		points = append(points, byKey[key])
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].sortKey() < points[j].sortKey()
	})

	timeline := make([]specs.ConcurrencyPointSpec, 0, len(points))
	sumPct := 0.0
	maxPct := 0.0
	for _, p := range points {
		total := len(p.allRooms)
		occupied := len(p.occupiedRooms)
		pct := 0.0
		if total > 0 {
			pct = float64(occupied) / float64(total) * 100
		}
		sumPct += pct
		if pct > maxPct {
			maxPct = pct
		}
		timeline = append(timeline, specs.ConcurrencyPointSpec{
			Time:     fmt.Sprintf("W%d D%d %s", p.week, p.day, p.timeStr),
			Occupied: occupied,
			Total:    total,
			Pct:      pct,
		})
	}

	avgPct := 0.0
	if len(timeline) > 0 {
		avgPct = sumPct / float64(len(timeline))
	}

	return specs.ConcurrencyStatsSpec{
		AvgPct:      avgPct,
		MaxPct:      maxPct,
		Timeline:    timeline,
		UniqueRooms: len(uniqueRooms),
	}
}
