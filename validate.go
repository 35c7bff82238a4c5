package sleepline

import "fmt"

// Validate rejects timelines that are absent, empty, or missing required fields.
func Validate(tl *Timeline) error {
	return validate(tl, false)
}

// ValidateTolerateUnknown behaves like Validate but accepts value-less samples
// whose source is not measured, as left behind by unrepaired long gaps.
func ValidateTolerateUnknown(tl *Timeline) error {
	return validate(tl, true)
}

func validate(tl *Timeline, tolerateUnknown bool) error {
	if tl == nil {
		return ErrTimelineAbsent
	}
	if len(tl.Samples) == 0 {
		return ErrTimelineEmpty
	}
	for i := range tl.Samples {
		s := &tl.Samples[i]
		if s.LocalTime.IsZero() {
			return fmt.Errorf("sample at second %d has no timestamp: %w", s.Second, ErrMissingValues)
		}
		if s.Value == nil {
			if tolerateUnknown && s.Source != SourceMeasured {
				continue
			}
			return fmt.Errorf("sample at second %d has no signal value: %w", s.Second, ErrMissingValues)
		}
	}
	return nil
}

// CheckBatch verifies the structural shape of one input batch. Batches that
// fail are dropped by the loader rather than aborting the run.
func CheckBatch(b Batch) error {
	if b.Err != nil {
		return fmt.Errorf("%s: %v: %w", b.File, b.Err, ErrBatchUnreadable)
	}
	if len(b.Records) == 0 {
		return fmt.Errorf("%s: %w", b.File, ErrBatchEmpty)
	}
	if len(b.Columns) != len(RequiredColumns) {
		return fmt.Errorf("%s has %d columns, want %d: %w", b.File, len(b.Columns), len(RequiredColumns), ErrWrongColumns)
	}
	for i, want := range RequiredColumns {
		if b.Columns[i] != want {
			return fmt.Errorf("%s column %d is %q, want %q: %w", b.File, i, b.Columns[i], want, ErrWrongColumns)
		}
	}
	for i, rec := range b.Records {
		if rec.Name == "" || rec.Time == "" || rec.Value == "" || rec.Status == "" {
			return fmt.Errorf("%s row %d: %w", b.File, i, ErrMissingValues)
		}
	}
	return nil
}

// ValidateReadings rejects an empty merge or readings with unset timestamps.
func ValidateReadings(readings []Reading) error {
	if len(readings) == 0 {
		return ErrTimelineEmpty
	}
	for i, r := range readings {
		if r.Time == "" {
			return fmt.Errorf("reading %d has no timestamp: %w", i, ErrMissingValues)
		}
	}
	return nil
}
