package sleepline

import (
	"fmt"
	"sort"
	"time"
)

// Normalize parses the raw UTC timestamps, localizes them to loc, and indexes
// every reading by whole seconds elapsed since the earliest instant. The
// earliest reading always lands on second 0.
func Normalize(readings []Reading, loc *time.Location) (*Timeline, error) {
	if len(readings) == 0 {
		return nil, ErrTimelineEmpty
	}
	if loc == nil {
		loc = time.UTC
	}
	instants := make([]time.Time, len(readings))
	for i, r := range readings {
		ts, err := time.Parse(RawTimeLayout, r.Time)
		if err != nil {
			return nil, fmt.Errorf("timestamp %q: %w", r.Time, ErrTimestampDefective)
		}
		instants[i] = ts
	}
	min := instants[0]
	for _, ts := range instants[1:] {
		if ts.Before(min) {
			min = ts
		}
	}
	samples := make([]Sample, len(readings))
	for i, r := range readings {
		samples[i] = Sample{
			Second:    int(instants[i].Unix() - min.Unix()),
			LocalTime: instants[i].In(loc),
			Value:     floatPtr(r.Value),
			Status:    r.Status,
			Source:    SourceMeasured,
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Second < samples[j].Second })
	return &Timeline{Samples: samples}, nil
}
