// Command spaceaudit runs a full utilization study over an observation
// spreadsheet: column auto-mapping, record normalization, aggregation, and
// optional export / persistence of the resulting metrics.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"workplace-utilization/export"
	"workplace-utilization/ingest"
	"workplace-utilization/internal"
	"workplace-utilization/internal/infra"
	"workplace-utilization/specs"
	"workplace-utilization/store"
)

type options struct {
	input      string
	studyType  string
	capacities string
	roomFilter string
	outJSON    string
	outXLSX    string
	outCSV     string
	dbURL      string
	dbSchema   string
	dbTag      string
	demo       bool
	demoSeed   int64
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "observation spreadsheet (.xlsx, .xlsm or .csv)")
	flag.StringVar(&opts.studyType, "type", specs.StudyTypeMeeting, "study type: meeting or workstation")
	flag.StringVar(&opts.capacities, "capacities", "", "JSON file mapping \"floor::room\" keys to declared capacities")
	flag.StringVar(&opts.roomFilter, "room-filter", "", "restrict the concurrency profile to one room type")
	flag.StringVar(&opts.outJSON, "out-json", "", "write the full metrics bundle as JSON")
	flag.StringVar(&opts.outXLSX, "out-xlsx", "", "write normalized records and room performance as a workbook")
	flag.StringVar(&opts.outCSV, "out-csv", "", "write room performance as CSV")
	flag.StringVar(&opts.dbURL, "db", store.URLFromEnv(), "Postgres connection string (defaults to SPACEAUDIT_DB_URL / DATABASE_URL)")
	flag.StringVar(&opts.dbSchema, "db-schema", store.DefaultSchema, "Postgres schema holding study runs")
	flag.StringVar(&opts.dbTag, "db-tag", "", "label attached to the stored run")
	flag.BoolVar(&opts.demo, "demo", false, "run against generated sample observations instead of a file")
	flag.Int64Var(&opts.demoSeed, "demo-seed", 42, "seed for the sample generator")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(opts, log); err != nil {
		log.Error("study failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(opts options, log *slog.Logger) error {
	if !opts.demo && opts.input == "" {
		return fmt.Errorf("either -input or -demo is required")
	}

	bus := infra.NewBus()
	bus.SubscribeAll(func(e infra.StageEvent) {
		log.Info("stage complete",
			slog.String("stage", e.Stage.String()),
			slog.Int("count", e.Count),
			slog.String("detail", e.Detail))
	})

	records, err := loadRecords(opts, bus, log)
	if err != nil {
		return err
	}

	capacities, err := loadCapacities(opts.capacities)
	if err != nil {
		return err
	}

	studyType, err := internal.NewStudyType(opts.studyType)
	if err != nil {
		return err
	}

	var metrics specs.UtilizationMetricsSpec
	if studyType.IsMeeting() {
		metrics, err = internal.AggregateMeeting(records, capacities)
	} else {
		metrics, err = internal.AggregateWorkstationSpec(records)
	}
	if err != nil {
		return fmt.Errorf("unable to aggregate records: %w", err)
	}

	if studyType.IsMeeting() && opts.roomFilter != "" {
		filtered, err := internal.ComputeConcurrencySpec(records, opts.roomFilter)
		if err != nil {
			return err
		}
		metrics.Concurrency = &filtered
	}
	bus.Publish(infra.StageEvent{Stage: infra.MetricsComputed, Count: len(metrics.RoomMetrics)})

	if err := writeOutputs(opts, records, metrics, bus); err != nil {
		return err
	}

	if opts.dbURL != "" {
		runID, err := store.StoreRun(studyType.ToString(), metrics, store.Config{
			URL:    opts.dbURL,
			Schema: opts.dbSchema,
			Tag:    opts.dbTag,
		})
		if err != nil {
			return fmt.Errorf("unable to store run: %w", err)
		}
		bus.Publish(infra.StageEvent{Stage: infra.ReportStored, Count: 1, Detail: runID})
	}

	printSummary(metrics, studyType)
	return nil
}

// loadRecords produces the normalized record set, either from generated
// sample data (demo mode) or by mapping and transforming the input file.
func loadRecords(opts options, bus *infra.Bus, log *slog.Logger) ([]specs.ObservationRecordSpec, error) {
	if opts.demo {
		records, err := internal.GenerateSampleRecords(opts.studyType, opts.demoSeed)
		if err != nil {
			return nil, err
		}
		bus.Publish(infra.StageEvent{Stage: infra.RecordsNormalized, Count: len(records), Detail: "sample data"})
		return records, nil
	}

	rows, err := ingest.ReadMatrix(opts.input)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", opts.input, err)
	}
	bus.Publish(infra.StageEvent{Stage: infra.RawRowsLoaded, Count: len(rows)})

	headers := make([]string, 0)
	if len(rows) > 0 {
		for _, cell := range rows[0] {
			headers = append(headers, fmt.Sprint(cell))
		}
	}

	mapping, err := internal.AutoMap(headers, opts.studyType)
	if err != nil {
		return nil, fmt.Errorf("unable to map columns: %w", err)
	}

	validation, err := internal.ValidateMapping(rows, mapping, opts.studyType)
	if err != nil {
		return nil, err
	}
	// Validation is advisory: missing columns degrade the metrics that need
	// them but never block a run.
	if !validation.IsValid {
		log.Warn("required columns not found; dependent metrics will degrade",
			slog.Any("missing", validation.MissingFields))
	}
	for _, warning := range validation.Warnings {
		log.Warn("mapping warning", slog.String("warning", warning))
	}
	bus.Publish(infra.StageEvent{Stage: infra.MappingResolved, Count: len(mapping)})

	result, err := internal.TransformSpec(rows, mapping, opts.studyType)
	if err != nil {
		return nil, fmt.Errorf("unable to normalize rows: %w", err)
	}
	if result.UnrecognizedStatusRows > 0 {
		log.Warn("rows with unrecognized status treated as vacant",
			slog.Int("rows", result.UnrecognizedStatusRows))
	}
	bus.Publish(infra.StageEvent{Stage: infra.RecordsNormalized, Count: len(result.Records)})
	return result.Records, nil
}

func loadCapacities(path string) (map[string]int, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read capacities file: %w", err)
	}
	capacities := map[string]int{}
	if err := json.Unmarshal(data, &capacities); err != nil {
		return nil, fmt.Errorf("unable to parse capacities file: %w", err)
	}
	return capacities, nil
}

func writeOutputs(opts options, records []specs.ObservationRecordSpec, metrics specs.UtilizationMetricsSpec, bus *infra.Bus) error {
	if opts.outJSON != "" {
		if err := export.WriteJSON(opts.outJSON, metrics); err != nil {
			return fmt.Errorf("unable to write JSON report: %w", err)
		}
		bus.Publish(infra.StageEvent{Stage: infra.ReportExported, Count: 1, Detail: opts.outJSON})
	}
	if opts.outXLSX != "" {
		if err := export.WriteWorkbook(opts.outXLSX, records, metrics.RoomMetrics); err != nil {
			return fmt.Errorf("unable to write workbook: %w", err)
		}
		bus.Publish(infra.StageEvent{Stage: infra.ReportExported, Count: 1, Detail: opts.outXLSX})
	}
	if opts.outCSV != "" {
		if err := export.WriteRoomCSV(opts.outCSV, metrics.RoomMetrics); err != nil {
			return fmt.Errorf("unable to write CSV report: %w", err)
		}
		bus.Publish(infra.StageEvent{Stage: infra.ReportExported, Count: 1, Detail: opts.outCSV})
	}
	return nil
}

func printSummary(metrics specs.UtilizationMetricsSpec, studyType internal.StudyType) {
	if studyType.IsWorkstation() {
		fmt.Printf("Average occupancy: %.1f%%\n", metrics.AvgOccupancy)
		fmt.Printf("Peak occupancy:    %.1f%%\n", metrics.PeakOccupancy)
		for _, rate := range metrics.OccupancyByFloor {
			fmt.Printf("  %-12s %.1f%%\n", rate.Label, rate.Rate)
		}
		return
	}

	fmt.Printf("Rooms analyzed:        %d\n", metrics.TotalRooms)
	fmt.Printf("Total observations:    %d\n", metrics.TotalObservations)
	fmt.Printf("Overall utilization:   %.1f%%\n", metrics.OverallUtilization)
	fmt.Printf("Overall avg attendees: %.1f\n", metrics.OverallAvgAttendees)
	if metrics.Concurrency != nil {
		fmt.Printf("Concurrency avg/max:   %.1f%% / %.1f%%\n",
			metrics.Concurrency.AvgPct, metrics.Concurrency.MaxPct)
	}
	for _, insight := range metrics.GlobalInsights {
		fmt.Printf("  - %s\n", insight)
	}
}
