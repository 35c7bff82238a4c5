package pipeline

import (
	"time"

	"sleepline"
	"sleepline/store"
)

// Options configures one subject reconstruction run.
type Options struct {
	SubjectID  int
	DataDir    string
	Timezone   string
	GapCeiling int
	Store      store.Config
	SkipStore  bool
	OutDir     string
	Format     string // parquet|csv|json
	Overwrite  bool
}

// Result summarizes one completed run.
type Result struct {
	RunID        string                  `json:"run_id"`
	SubjectID    int                     `json:"subject_id"`
	Rows         int                     `json:"rows"`
	Days         int                     `json:"days"`
	Batches      []sleepline.BatchReport `json:"batches"`
	Fill         sleepline.FillStats     `json:"fill"`
	StoreTable   string                  `json:"store_table,omitempty"`
	TablePath    string                  `json:"table_path,omitempty"`
	ManifestPath string                  `json:"manifest_path,omitempty"`

	Timeline *sleepline.Timeline `json:"-"`
}

// OutputRow is one reconstructed second in the shape of the shared table.
type OutputRow struct {
	ElapsedSeconds int      `json:"elapsed_seconds"`
	SignalValue    *float64 `json:"signal_value,omitempty"`
	Status         *string  `json:"status,omitempty"`
	NumDays        int      `json:"num_days"`
	SubjectID      int      `json:"subject_id"`
}

// TableFormatVersion identifies the exported table layout.
const TableFormatVersion = "subject_table_v1"

// Manifest captures run metadata written alongside an exported table.
type Manifest struct {
	FormatVersion     string                  `json:"format_version"`
	RunID             string                  `json:"run_id"`
	GeneratedAt       time.Time               `json:"generated_at"`
	SubjectID         int                     `json:"subject_id"`
	Timezone          string                  `json:"timezone"`
	GapCeilingSeconds int                     `json:"gap_ceiling_seconds"`
	Rows              int                     `json:"rows"`
	Days              int                     `json:"days"`
	Batches           []sleepline.BatchReport `json:"batches"`
	Fill              sleepline.FillStats     `json:"fill"`
	TablePath         string                  `json:"table_path"`
}
