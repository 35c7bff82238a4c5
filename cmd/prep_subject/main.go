package main

import (
	"context"
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
	"sleepline/store"
)

func main() {
	var (
		subjectID  = flag.Int("subject", 0, "Subject identifier")
		dataDir    = flag.String("data-dir", "", "Directory holding the subject's recording files (must end with the subject id)")
		tz         = flag.String("tz", sleepline.DefaultTimezone, "Local time zone for day partitioning")
		gapCeiling = flag.Int("gap-ceiling", sleepline.DefaultGapCeiling, "Longest gap in seconds repaired by copying")
		outDir     = flag.String("out", "", "Optional directory for the exported table and manifest")
		format     = flag.String("format", "parquet", "Export format: parquet|csv|json")
		overwrite  = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
		skipStore  = flag.Bool("skip-store", false, "Reconstruct without touching the shared store")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --subject 2 --data-dir data/Subject2 [--out outdir] [--format parquet|csv|json]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *subjectID <= 0 || strings.TrimSpace(*dataDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	storeCfg, err := store.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "prep_subject failed: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: storeCfg.Level()})))

	result, err := pipeline.Run(context.Background(), pipeline.Options{
		SubjectID:  *subjectID,
		DataDir:    *dataDir,
		Timezone:   *tz,
		GapCeiling: *gapCeiling,
		Store:      storeCfg,
		SkipStore:  *skipStore,
		OutDir:     *outDir,
		Format:     *format,
		Overwrite:  *overwrite,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "prep_subject failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("prep_subject complete\n")
	fmt.Printf("Run id:            %s\n", result.RunID)
	fmt.Printf("Subject:           %d\n", result.SubjectID)
	fmt.Printf("Rows:              %s\n", humanize.Comma(int64(result.Rows)))
	fmt.Printf("Days:              %d\n", result.Days)
	fmt.Printf("Filled seconds:    %s\n", humanize.Comma(int64(result.Fill.FilledSeconds)))
	fmt.Printf("Unknown seconds:   %s\n", humanize.Comma(int64(result.Fill.UnknownSeconds)))
	for _, b := range result.Batches {
		if b.Dropped {
			fmt.Printf("dropped batch:     %s (%s)\n", filepath.Base(b.File), b.Reason)
		}
	}
	if result.StoreTable != "" {
		fmt.Printf("Store table:       %s\n", result.StoreTable)
	}
	if result.TablePath != "" {
		fmt.Printf("subject table:     %s\n", result.TablePath)
		fmt.Printf("manifest.json:     %s\n", result.ManifestPath)
	}
}
