package sleepline

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Load merges raw input batches into one ordered sequence of readings.
// Structurally bad batches are dropped with a warning and show up in the
// reports; a signal value that cannot be read as a number aborts the run.
func Load(batches []Batch) ([]Reading, []BatchReport, error) {
	reports := make([]BatchReport, 0, len(batches))
	var readings []Reading
	for _, b := range batches {
		report := BatchReport{File: b.File, Rows: len(b.Records)}
		if err := CheckBatch(b); err != nil {
			report.Dropped = true
			report.Reason = err.Error()
			reports = append(reports, report)
			slog.Warn("dropping batch", slog.String("file", b.File), slog.String("reason", err.Error()))
			continue
		}
		for _, rec := range b.Records {
			// Some devices repeat the header line mid-file.
			if rec.Time == "time" {
				continue
			}
			value, err := strconv.ParseFloat(rec.Value, 64)
			if err != nil {
				return nil, reports, fmt.Errorf("%s: signal value %q is not numeric: %w", b.File, rec.Value, ErrDataFileDefective)
			}
			readings = append(readings, Reading{Time: rec.Time, Value: value, Status: rec.Status})
		}
		reports = append(reports, report)
	}
	return readings, reports, nil
}
