package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sleepline"
)

func exportTable(outDir, format string, overwrite bool, tzName string, ceiling int, res *Result) error {
	if err := ensureOutputDir(outDir, overwrite); err != nil {
		return err
	}

	rows := buildOutputRows(res.Timeline.Samples, res.SubjectID)
	tablePath := filepath.Join(outDir, "subject_table."+formatExtension(format))
	switch format {
	case "csv":
		if err := writeTableCSV(tablePath, rows); err != nil {
			return fmt.Errorf("write subject table csv: %w", err)
		}
	case "json":
		if err := writeJSON(tablePath, rows); err != nil {
			return fmt.Errorf("write subject table json: %w", err)
		}
	case "parquet":
		if err := writeTableParquet(tablePath, rows); err != nil {
			return fmt.Errorf("write subject table parquet: %w", err)
		}
	}

	manifest := Manifest{
		FormatVersion:     TableFormatVersion,
		RunID:             res.RunID,
		GeneratedAt:       time.Now().UTC(),
		SubjectID:         res.SubjectID,
		Timezone:          tzName,
		GapCeilingSeconds: ceiling,
		Rows:              res.Rows,
		Days:              res.Days,
		Batches:           res.Batches,
		Fill:              res.Fill,
		TablePath:         filepath.Base(tablePath),
	}
	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := writeJSON(manifestPath, manifest); err != nil {
		return fmt.Errorf("write manifest.json: %w", err)
	}

	res.TablePath = tablePath
	res.ManifestPath = manifestPath
	return nil
}

func buildOutputRows(samples []sleepline.Sample, subjectID int) []OutputRow {
	rows := make([]OutputRow, len(samples))
	for i := range samples {
		s := &samples[i]
		row := OutputRow{
			ElapsedSeconds: s.Second,
			NumDays:        s.Day,
			SubjectID:      subjectID,
		}
		if s.Value != nil {
			v := *s.Value
			row.SignalValue = &v
		}
		if text, ok := s.RecordedStatus(); ok {
			status := text
			row.Status = &status
		}
		rows[i] = row
	}
	return rows
}

func formatExtension(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "json":
		return "json"
	default:
		return "parquet"
	}
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite to allow)", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTableCSV(path string, rows []OutputRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"elapsed_seconds", "signal_value", "status", "num_days", "subject_id"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		status := ""
		if r.Status != nil {
			status = *r.Status
		}
		row := []string{
			strconv.Itoa(r.ElapsedSeconds),
			formatFloatPtr(r.SignalValue),
			status,
			strconv.Itoa(r.NumDays),
			strconv.Itoa(r.SubjectID),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
