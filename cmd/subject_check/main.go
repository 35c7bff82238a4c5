package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	// Zone lookups must work on hosts without a system tzdata.
	_ "time/tzdata"

	"github.com/dustin/go-humanize"

	"sleepline"
	"sleepline/pipeline"
)

func main() {
	var (
		subjectID  = flag.Int("subject", 0, "Subject identifier")
		dataDir    = flag.String("data-dir", "", "Directory holding the subject's recording files (must end with the subject id)")
		tz         = flag.String("tz", sleepline.DefaultTimezone, "Local time zone for day partitioning")
		gapCeiling = flag.Int("gap-ceiling", sleepline.DefaultGapCeiling, "Longest gap in seconds repaired by copying")
		asJSON     = flag.Bool("json", false, "Emit the check report as JSON")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --subject 2 --data-dir data/Subject2 [--json]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *subjectID <= 0 || strings.TrimSpace(*dataDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Keep the report readable: only warnings (dropped batches, unfillable
	// gaps) interleave on stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	result, err := pipeline.Run(context.Background(), pipeline.Options{
		SubjectID:  *subjectID,
		DataDir:    *dataDir,
		Timezone:   *tz,
		GapCeiling: *gapCeiling,
		SkipStore:  true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "subject_check failed: %v\n", err)
		os.Exit(1)
	}
	spans := sleepline.DaySpans(result.Timeline)

	if *asJSON {
		report := struct {
			*pipeline.Result
			DaySpans []sleepline.DaySpan `json:"day_spans"`
		}{result, spans}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "subject_check failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("subject %d check\n", result.SubjectID)
	fmt.Printf("Rows:              %s\n", humanize.Comma(int64(result.Rows)))
	fmt.Printf("Days:              %d\n", result.Days)
	fmt.Printf("Missing seconds:   %s\n", humanize.Comma(int64(result.Fill.MissingSeconds)))
	fmt.Printf("Filled seconds:    %s\n", humanize.Comma(int64(result.Fill.FilledSeconds)))
	fmt.Printf("Unknown seconds:   %s\n", humanize.Comma(int64(result.Fill.UnknownSeconds)))
	fmt.Printf("Longest gap:       %ss\n", humanize.Comma(int64(result.Fill.LongestGapSeconds)))
	for _, b := range result.Batches {
		state := "ok"
		if b.Dropped {
			state = "dropped: " + b.Reason
		}
		fmt.Printf("batch %-28s %s\n", filepath.Base(b.File), state)
	}
	for _, span := range spans {
		fmt.Printf("day %-3d %s -> %s  %s seconds\n",
			span.Day,
			span.Start.Format("2006-01-02 15:04:05"),
			span.End.Format("2006-01-02 15:04:05"),
			humanize.Comma(int64(span.Seconds)))
	}
}
