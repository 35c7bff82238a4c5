package sleepline

import "time"

// PartitionDays returns a copy of tl with every sample assigned a 1-based day
// number over noon-aligned windows. Day 1 runs from the recording start to the
// first local noon, later days run noon to noon, and the final day extends to
// the end of the timeline. The numbering is a pure function of the sample
// timestamps, so assigning twice gives identical results.
func PartitionDays(tl *Timeline) *Timeline {
	if tl == nil || len(tl.Samples) == 0 {
		return tl
	}
	start := tl.Samples[0].LocalTime
	end := tl.Samples[len(tl.Samples)-1].LocalTime

	// The first boundary is the coming wall-clock noon: same date before 12:00,
	// next date otherwise. Later boundaries advance by 24 absolute hours.
	noonDay := start.Day()
	if start.Hour() >= 12 {
		noonDay++
	}
	noon := time.Date(start.Year(), start.Month(), noonDay, 12, 0, 0, 0, start.Location())

	onsets := []time.Time{start}
	for noon.Before(end) {
		onsets = append(onsets, noon)
		noon = noon.Add(24 * time.Hour)
	}

	out := make([]Sample, len(tl.Samples))
	copy(out, tl.Samples)
	d := 0
	for i := range out {
		for d+1 < len(onsets) && !out[i].LocalTime.Before(onsets[d+1]) {
			d++
		}
		out[i].Day = d + 1
	}
	return &Timeline{Samples: out}
}

// DaySpan describes one partitioned day of a timeline.
type DaySpan struct {
	Day     int       `json:"day"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Seconds int       `json:"seconds"`
}

// DaySpans summarizes the day partitioning of tl, one entry per assigned day.
// It returns nil when the timeline has not been partitioned yet.
func DaySpans(tl *Timeline) []DaySpan {
	if tl == nil || len(tl.Samples) == 0 || tl.Samples[0].Day == 0 {
		return nil
	}
	var spans []DaySpan
	for i := range tl.Samples {
		s := &tl.Samples[i]
		if len(spans) == 0 || spans[len(spans)-1].Day != s.Day {
			spans = append(spans, DaySpan{Day: s.Day, Start: s.LocalTime})
		}
		span := &spans[len(spans)-1]
		span.End = s.LocalTime
		span.Seconds++
	}
	return spans
}
