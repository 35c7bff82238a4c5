package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"sleepline"
	"sleepline/ingest"
	"sleepline/store"
)

// Run executes the full reconstruction for one subject: read the recording
// batches, merge them, normalize time, fill gaps, partition days, then export
// the table and append it to the shared store.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.SubjectID <= 0 {
		return nil, fmt.Errorf("subject id must be positive")
	}
	dataDir := strings.TrimSpace(opts.DataDir)
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if !strings.HasSuffix(filepath.Clean(dataDir), strconv.Itoa(opts.SubjectID)) {
		return nil, fmt.Errorf("data directory %s does not end with subject %d: %w",
			dataDir, opts.SubjectID, sleepline.ErrSubjectPathMismatch)
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" && format != "json" {
		return nil, fmt.Errorf("unsupported format %q (expected parquet|csv|json)", format)
	}
	tzName := opts.Timezone
	if tzName == "" {
		tzName = sleepline.DefaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tzName, err)
	}
	ceiling := opts.GapCeiling
	if ceiling <= 0 {
		ceiling = sleepline.DefaultGapCeiling
	}

	// The duplicate guard runs before any file is read, so a re-run of an
	// already stored subject never gets as far as touching its data.
	var st *store.Store
	if !opts.SkipStore {
		st, err = store.Open(ctx, opts.Store)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		exists, err := st.HasSubject(ctx, opts.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("subject guard: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("subject %d: %w", opts.SubjectID, sleepline.ErrSubjectExists)
		}
	}

	files, err := ingest.ScanDir(dataDir)
	if err != nil {
		return nil, err
	}
	batches := make([]sleepline.Batch, 0, len(files))
	for _, path := range files {
		batch, err := ingest.ReadFile(path)
		if err != nil {
			batch = sleepline.Batch{File: path, Err: err}
		}
		batches = append(batches, batch)
	}

	readings, reports, err := sleepline.Load(batches)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	if err := sleepline.ValidateReadings(readings); err != nil {
		return nil, fmt.Errorf("merged input: %w", err)
	}

	tl, err := sleepline.Normalize(readings, loc)
	if err != nil {
		return nil, fmt.Errorf("normalize timestamps: %w", err)
	}
	if err := sleepline.Validate(tl); err != nil {
		return nil, fmt.Errorf("normalized timeline: %w", err)
	}

	filled, stats, err := sleepline.Fill(tl, ceiling)
	if err != nil {
		return nil, fmt.Errorf("fill gaps: %w", err)
	}
	if err := sleepline.ValidateTolerateUnknown(filled); err != nil {
		return nil, fmt.Errorf("filled timeline: %w", err)
	}

	final := sleepline.PartitionDays(filled)

	res := &Result{
		RunID:     uuid.NewString(),
		SubjectID: opts.SubjectID,
		Rows:      len(final.Samples),
		Days:      final.Samples[len(final.Samples)-1].Day,
		Batches:   reports,
		Fill:      stats,
		Timeline:  final,
	}

	if opts.OutDir != "" {
		if err := exportTable(opts.OutDir, format, opts.Overwrite, tzName, ceiling, res); err != nil {
			return nil, err
		}
	}

	if st != nil {
		if err := st.AppendSubject(ctx, opts.SubjectID, final.Samples); err != nil {
			return nil, fmt.Errorf("append to store: %w", err)
		}
		res.StoreTable = st.Table()
	}

	slog.Info("subject reconstructed",
		slog.String("run_id", res.RunID),
		slog.Int("subject_id", opts.SubjectID),
		slog.String("rows", humanize.Comma(int64(res.Rows))),
		slog.Int("days", res.Days),
		slog.Int("filled_seconds", stats.FilledSeconds),
		slog.Int("unknown_seconds", stats.UnknownSeconds))

	return res, nil
}
