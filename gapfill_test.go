package sleepline

import (
	"errors"
	"testing"
	"time"
)

func TestFillReturnsDenseTimelineUnchanged(t *testing.T) {
	start := time.Date(2017, 6, 1, 3, 0, 0, 0, time.UTC)
	tl := measuredTimeline(t, start, secondsRange(0, 10))
	out, stats, err := Fill(tl, DefaultGapCeiling)
	if err != nil {
		t.Fatalf("Fill error: %v", err)
	}
	if len(out.Samples) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(out.Samples))
	}
	if out.Samples[9].Second != 9 {
		t.Errorf("expected final second kept on dense input, got %d", out.Samples[9].Second)
	}
	if stats != (FillStats{}) {
		t.Errorf("expected zero stats for dense input, got %+v", stats)
	}
}

func TestFillReindexDropsFinalSecond(t *testing.T) {
	start := time.Date(2017, 6, 1, 3, 0, 0, 0, time.UTC)
	seconds := append(secondsRange(0, 3), secondsRange(4, 7)...)
	tl := measuredTimeline(t, start, seconds)
	out, stats, err := Fill(tl, DefaultGapCeiling)
	if err != nil {
		t.Fatalf("Fill error: %v", err)
	}
	if len(out.Samples) != 6 {
		t.Fatalf("expected domain [0,6), got %d samples", len(out.Samples))
	}
	for i, s := range out.Samples {
		if s.Second != i {
			t.Fatalf("sample %d has second %d, want dense index", i, s.Second)
		}
	}
	if out.Samples[5].Second != 5 {
		t.Errorf("expected final recorded second dropped, last is %d", out.Samples[5].Second)
	}
	if out.Samples[3].Source != SourceInterpolated {
		t.Errorf("expected second 3 repaired, got %s", out.Samples[3].Source)
	}
	if got := out.Samples[3].Value; got == nil || *got != signalAt(2) {
		t.Errorf("expected second 3 copied from second 2, got %v", got)
	}
	if stats.MissingSeconds != 1 || stats.FilledSeconds != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestFillCopiesPrecedingWindow(t *testing.T) {
	start := time.Date(2017, 6, 1, 3, 0, 0, 0, time.UTC)
	seconds := append(secondsRange(0, 200), secondsRange(320, 600)...)
	tl := measuredTimeline(t, start, seconds)
	out, stats, err := Fill(tl, DefaultGapCeiling)
	if err != nil {
		t.Fatalf("Fill error: %v", err)
	}
	if len(out.Samples) != 599 {
		t.Fatalf("expected 599 samples, got %d", len(out.Samples))
	}
	for k := 0; k < 120; k++ {
		s := out.Samples[200+k]
		if s.Source != SourceInterpolated {
			t.Fatalf("second %d source = %s, want interpolated", 200+k, s.Source)
		}
		if s.Value == nil || *s.Value != signalAt(80+k) {
			t.Fatalf("second %d value = %v, want copy of second %d", 200+k, s.Value, 80+k)
		}
		if want := start.Add(time.Duration(200+k) * time.Second); !s.LocalTime.Equal(want) {
			t.Fatalf("second %d timestamp = %s, want %s", 200+k, s.LocalTime, want)
		}
	}
	if stats.MissingSeconds != 120 || stats.FilledSeconds != 120 || stats.UnknownSeconds != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.MissingBlocks != 1 || stats.FilledBlocks != 1 {
		t.Errorf("unexpected block stats %+v", stats)
	}
}

func TestFillLeavesLongGapsUnknown(t *testing.T) {
	start := time.Date(2017, 6, 1, 3, 0, 0, 0, time.UTC)
	seconds := append(secondsRange(0, 500), secondsRange(1100, 2000)...)
	tl := measuredTimeline(t, start, seconds)
	out, stats, err := Fill(tl, DefaultGapCeiling)
	if err != nil {
		t.Fatalf("expected a 600s gap to be non-fatal, got %v", err)
	}
	if len(out.Samples) != 1999 {
		t.Fatalf("expected 1999 samples, got %d", len(out.Samples))
	}
	for sec := 500; sec < 1100; sec++ {
		s := out.Samples[sec]
		if s.Source != SourceUnknown || s.Value != nil {
			t.Fatalf("second %d should stay unknown, got source %s value %v", sec, s.Source, s.Value)
		}
	}
	for _, sec := range []int{0, 499, 1100, 1998} {
		s := out.Samples[sec]
		if s.Source != SourceMeasured || s.Value == nil || *s.Value != signalAt(sec) {
			t.Fatalf("measured second %d was touched: source %s value %v", sec, s.Source, s.Value)
		}
	}
	if stats.UnknownSeconds != 600 || stats.FilledSeconds != 0 || stats.LongestGapSeconds != 600 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if err := Validate(out); !errors.Is(err, ErrMissingValues) {
		t.Fatalf("expected strict validation to reject unknown seconds, got %v", err)
	}
	if err := ValidateTolerateUnknown(out); err != nil {
		t.Fatalf("tolerant validation error: %v", err)
	}
}

func TestFillExactCeilingIsRepaired(t *testing.T) {
	start := time.Date(2017, 6, 1, 3, 0, 0, 0, time.UTC)
	seconds := append(secondsRange(0, 400), secondsRange(700, 1000)...)
	tl := measuredTimeline(t, start, seconds)
	out, stats, err := Fill(tl, 300)
	if err != nil {
		t.Fatalf("Fill error: %v", err)
	}
	if stats.FilledSeconds != 300 || stats.UnknownSeconds != 0 {
		t.Fatalf("expected a 300s gap repaired at ceiling 300, got %+v", stats)
	}
	if got := out.Samples[400].Value; got == nil || *got != signalAt(100) {
		t.Errorf("second 400 value = %v, want copy of second 100", got)
	}
}

func TestFillGapAtStartStaysUnknown(t *testing.T) {
	start := time.Date(2017, 6, 1, 3, 0, 0, 0, time.UTC)
	tl := measuredTimeline(t, start, secondsRange(5, 21))
	out, stats, err := Fill(tl, DefaultGapCeiling)
	if err != nil {
		t.Fatalf("Fill error: %v", err)
	}
	if len(out.Samples) != 20 {
		t.Fatalf("expected 20 samples, got %d", len(out.Samples))
	}
	for sec := 0; sec < 5; sec++ {
		if out.Samples[sec].Source != SourceUnknown {
			t.Fatalf("second %d has no preceding window, want unknown, got %s", sec, out.Samples[sec].Source)
		}
	}
	if stats.UnknownSeconds != 5 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestFillDonorGapLeavesTargetUnknown(t *testing.T) {
	start := time.Date(2017, 6, 1, 3, 0, 0, 0, time.UTC)
	seconds := append(secondsRange(0, 40), secondsRange(50, 55)...)
	seconds = append(seconds, secondsRange(65, 100)...)
	tl := measuredTimeline(t, start, seconds)
	out, stats, err := Fill(tl, DefaultGapCeiling)
	if err != nil {
		t.Fatalf("Fill error: %v", err)
	}

	// First gap [40,50) copies from measured [30,40).
	for k := 0; k < 10; k++ {
		s := out.Samples[40+k]
		if s.Source != SourceInterpolated || s.Value == nil || *s.Value != signalAt(30+k) {
			t.Fatalf("second %d = %+v, want copy of second %d", 40+k, s, 30+k)
		}
	}
	// Second gap [55,65) reads window [45,55): seconds 45-49 were missing
	// before filling, so their targets stay unknown.
	for sec := 55; sec < 60; sec++ {
		if out.Samples[sec].Source != SourceUnknown {
			t.Fatalf("second %d should stay unknown, donor was missing, got %s", sec, out.Samples[sec].Source)
		}
	}
	for k := 0; k < 5; k++ {
		s := out.Samples[60+k]
		if s.Source != SourceInterpolated || s.Value == nil || *s.Value != signalAt(50+k) {
			t.Fatalf("second %d = %+v, want copy of second %d", 60+k, s, 50+k)
		}
	}
	if stats.MissingBlocks != 2 || stats.FilledBlocks != 1 {
		t.Errorf("unexpected block stats %+v", stats)
	}
	if stats.FilledSeconds != 15 || stats.UnknownSeconds != 5 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestFillRejectsInvalidTimeline(t *testing.T) {
	if _, _, err := Fill(nil, DefaultGapCeiling); !errors.Is(err, ErrTimelineAbsent) {
		t.Fatalf("expected absent timeline error, got %v", err)
	}
	if _, _, err := Fill(&Timeline{}, DefaultGapCeiling); !errors.Is(err, ErrTimelineEmpty) {
		t.Fatalf("expected empty timeline error, got %v", err)
	}
}

func signalAt(sec int) float64 {
	return float64(40 + sec%23)
}

func secondsRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for sec := from; sec < to; sec++ {
		out = append(out, sec)
	}
	return out
}

func measuredTimeline(t *testing.T, start time.Time, seconds []int) *Timeline {
	t.Helper()
	samples := make([]Sample, len(seconds))
	for i, sec := range seconds {
		samples[i] = Sample{
			Second:    sec,
			LocalTime: start.Add(time.Duration(sec) * time.Second),
			Value:     floatPtr(signalAt(sec)),
			Status:    "awake",
			Source:    SourceMeasured,
		}
	}
	return &Timeline{Samples: samples}
}
