package sleepline

import "time"

// RawTimeLayout is the exact timestamp form the recording devices emit.
const RawTimeLayout = "2006-01-02T15:04:05Z"

// DefaultTimezone is the zone recordings are localized to for day partitioning.
const DefaultTimezone = "US/Pacific"

// RequiredColumns is the exact column layout every input batch must carry.
var RequiredColumns = []string{"name", "time", "signal_value", "status"}

// Source tags the provenance of one reconstructed second.
type Source int

const (
	// SourceMeasured marks a second the device actually recorded.
	SourceMeasured Source = iota
	// SourceInterpolated marks a second repaired by copying a preceding window.
	SourceInterpolated
	// SourceUnknown marks a second inside a gap too long to repair.
	SourceUnknown
)

// String returns the lowercase name of the provenance tag.
func (s Source) String() string {
	switch s {
	case SourceInterpolated:
		return "interpolated"
	case SourceUnknown:
		return "unknown"
	default:
		return "measured"
	}
}

// MarshalText renders the provenance tag as its lowercase name.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RawRecord is one row of one input batch, exactly as the reader produced it.
type RawRecord struct {
	Name   string
	Time   string
	Value  string
	Status string
}

// Batch holds one input file's rows in file order.
type Batch struct {
	File    string
	Columns []string
	Records []RawRecord
	// Err is set by the reader when the file could not be parsed at all.
	Err error
}

// BatchReport records the load outcome for one input batch.
type BatchReport struct {
	File    string `json:"file"`
	Rows    int    `json:"rows"`
	Dropped bool   `json:"dropped"`
	Reason  string `json:"reason,omitempty"`
}

// Reading is one recorded second after batch merging, before time normalization.
type Reading struct {
	Time   string
	Value  float64
	Status string
}

// Sample is one second of a subject timeline.
type Sample struct {
	Second    int       `json:"elapsed_seconds"`
	LocalTime time.Time `json:"-"`
	Value     *float64  `json:"signal_value,omitempty"`
	Status    string    `json:"status,omitempty"`
	Source    Source    `json:"source"`
	Day       int       `json:"num_days,omitempty"`
}

// RecordedStatus returns the sample's status field and whether the device ever
// recorded one. Repaired and unknown seconds carry no status.
func (s *Sample) RecordedStatus() (string, bool) {
	if s.Source == SourceMeasured {
		return s.Status, true
	}
	return "", false
}

// Timeline is the per-subject arena of samples ordered by elapsed second.
// After gap filling the slice is dense: Samples[i].Second == i.
type Timeline struct {
	Samples []Sample
}

// MaxSecond returns the largest elapsed second in the timeline, or -1 when empty.
func (tl *Timeline) MaxSecond() int {
	max := -1
	for i := range tl.Samples {
		if tl.Samples[i].Second > max {
			max = tl.Samples[i].Second
		}
	}
	return max
}

func floatPtr(v float64) *float64 {
	return &v
}
