package internal

import (
	"fmt"
	"math/rand"

	"workplace-utilization/specs"
)

// Synthetic study shape used by the sample generator.
var (
	sampleFloors    = []string{"L10", "L11", "L12"}
	sampleTimeSlots = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
	sampleDepts     = []string{"Sales", "IT", "HR", "Finance", "Product"}
	sampleRooms     = []struct{ name, typ string }{
		{"Focus 01", "Focus Room"},
		{"Meet 01", "Meeting Room"},
		{"Meet 02", "Meeting Room"},
		{"Boardroom", "Boardroom"},
	}
)

// GenerateSampleRecords produces a synthetic record set for demos, tests,
// and benchmarks. Deterministic for a given seed.
//
// Workstation mode emits 800 desk readings; meeting mode emits ~500 room
// slots where an occupied slot expands to one row per attendee, matching how
// real meeting logs flatten.
func GenerateSampleRecords(studyType string, seed int64) ([]specs.ObservationRecordSpec, error) {
	st, err := NewStudyType(studyType)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	if st.IsWorkstation() {
		records := make([]specs.ObservationRecordSpec, 0, 800)
		for i := 0; i < 800; i++ {
			records = append(records, specs.ObservationRecordSpec{
				ID:         fmt.Sprintf("sim-%d", i),
				Date:       "2024-01-01",
				TimeSlot:   sampleTimeSlots[rng.Intn(len(sampleTimeSlots))],
				Floor:      sampleFloors[rng.Intn(len(sampleFloors))],
				Department: sampleDepts[rng.Intn(len(sampleDepts))],
				IsOccupied: rng.Float64() > 0.4,
			})
		}
		return records, nil
	}

	var records []specs.ObservationRecordSpec
	for i := 0; i < 500; i++ {
		room := sampleRooms[rng.Intn(len(sampleRooms))]
		timeSlot := sampleTimeSlots[rng.Intn(len(sampleTimeSlots))]
		floor := sampleFloors[rng.Intn(len(sampleFloors))]
		day := rng.Intn(5) + 1

		if rng.Float64() <= 0.3 {
			// Vacant slot: a single unoccupied row.
			records = append(records, specs.ObservationRecordSpec{
				ID:       fmt.Sprintf("sim-empty-%d", i),
				Floor:    floor,
				RoomName: room.name,
				RoomType: room.typ,
				Day:      day,
				TimeSlot: timeSlot,
			})
			continue
		}

		attendees := rng.Intn(8) + 1
		for p := 0; p < attendees; p++ {
			records = append(records, specs.ObservationRecordSpec{
				ID:            fmt.Sprintf("sim-occ-%d-%d", i, p),
				Floor:         floor,
				RoomName:      room.name,
				RoomType:      room.typ,
				Day:           day,
				TimeSlot:      timeSlot,
				IsOccupied:    true,
				AttendeeCount: 1,
			})
		}
	}
	return records, nil
}
