// Package export serializes study results to the fixed tabular and JSON
// output formats consumed downstream: a two-sheet workbook (normalized
// records + room performance), a room-performance CSV, and a full JSON
// report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"workplace-utilization/specs"
)

// Fixed column headers of the room performance sheet.
var roomHeaders = []string{
	"Floor",
	"Room Name",
	"Type",
	"Room Capacity (User)",
	"Observed Slots",
	"Occupied Slots",
	"Utilization %",
	"Avg Occupancy",
	"Top Meeting Size",
	"Classification",
}

// Fixed column headers of the normalized records sheet.
var recordHeaders = []string{
	"ID",
	"Date",
	"Time Slot",
	"Floor",
	"Department",
	"Room Name",
	"Room Type",
	"Occupied",
	"Attendees",
	"Week",
	"Day",
}

// WriteWorkbook writes the normalized record set and room performance
// metrics into a two-sheet workbook at path.
func WriteWorkbook(path string, records []specs.ObservationRecordSpec, rooms []specs.RoomPerformanceMetricSpec) error {
	f := excelize.NewFile()
	defer f.Close()

	const recordSheet = "Normalized Records"
	const roomSheet = "Room Performance"

	if err := f.SetSheetName("Sheet1", recordSheet); err != nil {
		return fmt.Errorf("unable to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(roomSheet); err != nil {
		return fmt.Errorf("unable to add sheet: %w", err)
	}

	if err := writeSheetRow(f, recordSheet, 1, toAnyRow(recordHeaders)); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{
			r.ID, r.Date, r.TimeSlot, r.Floor, r.Department,
			r.RoomName, r.RoomType, r.IsOccupied, r.AttendeeCount, r.Week, r.Day,
		}
		if err := writeSheetRow(f, recordSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeSheetRow(f, roomSheet, 1, toAnyRow(roomHeaders)); err != nil {
		return err
	}
	for i, room := range rooms {
		if err := writeSheetRow(f, roomSheet, i+2, roomRowValues(room)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("unable to save workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("unable to write row %d of %q: %w", rowNum, sheet, err)
	}
	return nil
}

// WriteRoomCSV writes the room performance metrics as CSV with the fixed
// headers.
func WriteRoomCSV(path string, rooms []specs.RoomPerformanceMetricSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(roomHeaders); err != nil {
		return err
	}
	for _, room := range rooms {
		record := make([]string, 0, len(roomHeaders))
		for _, v := range roomRowValues(room) {
			record = append(record, formatCell(v))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the full metrics bundle as indented JSON.
func WriteJSON(path string, metrics specs.UtilizationMetricsSpec) error {
	data, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func roomRowValues(room specs.RoomPerformanceMetricSpec) []any {
	return []any{
		room.Floor,
		room.RoomName,
		room.RoomType,
		room.Capacity,
		room.ObservedSlots,
		room.OccupiedSlots,
		room.UtilizationPct,
		room.AvgOccupancy,
		room.TopMeetingSize,
		room.Classification,
	}
}

func formatCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprint(t)
	}
}

func toAnyRow(values []string) []any {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
