package sleepline

import (
	"log/slog"
	"time"
)

// DefaultGapCeiling is the longest missing run, in seconds, repaired by copying.
const DefaultGapCeiling = 300

// FillStats summarizes what Fill did to one timeline.
type FillStats struct {
	MissingSeconds    int `json:"missing_seconds"`
	FilledSeconds     int `json:"filled_seconds"`
	UnknownSeconds    int `json:"unknown_seconds"`
	MissingBlocks     int `json:"missing_blocks"`
	FilledBlocks      int `json:"filled_blocks"`
	LongestGapSeconds int `json:"longest_gap_seconds"`
}

// Fill re-indexes tl onto a dense per-second domain and repairs bounded gaps
// by copying the immediately preceding window of equal length, position for
// position. Runs longer than ceiling seconds are kept as unknown samples.
//
// The dense domain is the half-open range [0, maxSecond): whenever any second
// is missing, the final recorded second falls outside the reconstructed domain
// and is dropped. A timeline that is already dense is returned unchanged,
// final second included.
func Fill(tl *Timeline, ceiling int) (*Timeline, FillStats, error) {
	if err := Validate(tl); err != nil {
		return nil, FillStats{}, err
	}
	if ceiling <= 0 {
		ceiling = DefaultGapCeiling
	}

	maxSecond := tl.MaxSecond()
	recorded := make(map[int]int, len(tl.Samples))
	for i := range tl.Samples {
		recorded[tl.Samples[i].Second] = i
	}
	missing := 0
	for sec := 0; sec < maxSecond; sec++ {
		if _, ok := recorded[sec]; !ok {
			missing++
		}
	}
	if missing == 0 {
		return tl, FillStats{}, nil
	}

	// Synthesized rows get the exact timestamp their index implies.
	base := tl.Samples[0].LocalTime.Add(-time.Duration(tl.Samples[0].Second) * time.Second)
	arena := make([]Sample, maxSecond)
	for sec := 0; sec < maxSecond; sec++ {
		if i, ok := recorded[sec]; ok {
			arena[sec] = tl.Samples[i]
			continue
		}
		arena[sec] = Sample{
			Second:    sec,
			LocalTime: base.Add(time.Duration(sec) * time.Second),
			Source:    SourceUnknown,
		}
	}

	// Copies read from the pre-fill snapshot only, so a donor second that was
	// itself missing contributes nothing and its target stays unknown.
	donor := make([]*float64, maxSecond)
	for sec := range arena {
		if arena[sec].Source == SourceMeasured {
			donor[sec] = arena[sec].Value
		}
	}

	stats := FillStats{MissingSeconds: missing}
	for sec := 0; sec < maxSecond; {
		if arena[sec].Source == SourceMeasured {
			sec++
			continue
		}
		start := sec
		for sec < maxSecond && arena[sec].Source != SourceMeasured {
			sec++
		}
		length := sec - start
		stats.MissingBlocks++
		if length > stats.LongestGapSeconds {
			stats.LongestGapSeconds = length
		}
		if length > ceiling {
			slog.Warn("gap exceeds fill ceiling, leaving unknown",
				slog.Int("start_second", start),
				slog.Int("length_seconds", length),
				slog.Int("ceiling_seconds", ceiling))
			continue
		}
		if start-length < 0 {
			slog.Warn("gap has no preceding window, leaving unknown",
				slog.Int("start_second", start),
				slog.Int("length_seconds", length))
			continue
		}
		copied := 0
		for k := 0; k < length; k++ {
			src := donor[start-length+k]
			if src == nil {
				continue
			}
			arena[start+k].Value = floatPtr(*src)
			arena[start+k].Source = SourceInterpolated
			copied++
		}
		stats.FilledSeconds += copied
		if copied == length {
			stats.FilledBlocks++
		}
	}
	stats.UnknownSeconds = stats.MissingSeconds - stats.FilledSeconds
	return &Timeline{Samples: arena}, stats, nil
}
