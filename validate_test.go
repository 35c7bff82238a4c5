package sleepline

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateRejectsAbsentTimeline(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrTimelineAbsent) {
		t.Fatalf("expected absent timeline error, got %v", err)
	}
}

func TestValidateRejectsEmptyTimeline(t *testing.T) {
	if err := Validate(&Timeline{}); !errors.Is(err, ErrTimelineEmpty) {
		t.Fatalf("expected empty timeline error, got %v", err)
	}
}

func TestValidateRejectsMissingValues(t *testing.T) {
	base := time.Date(2017, 5, 25, 3, 0, 0, 0, time.UTC)
	tl := &Timeline{Samples: []Sample{
		{Second: 0, LocalTime: base, Value: floatPtr(61), Source: SourceMeasured},
		{Second: 1, LocalTime: base.Add(time.Second), Source: SourceUnknown},
	}}
	if err := Validate(tl); !errors.Is(err, ErrMissingValues) {
		t.Fatalf("expected missing values error, got %v", err)
	}
	if err := ValidateTolerateUnknown(tl); err != nil {
		t.Fatalf("tolerant validation error: %v", err)
	}
}

func TestValidateTolerantStillRejectsMeasuredWithoutValue(t *testing.T) {
	base := time.Date(2017, 5, 25, 3, 0, 0, 0, time.UTC)
	tl := &Timeline{Samples: []Sample{
		{Second: 0, LocalTime: base, Source: SourceMeasured},
	}}
	if err := ValidateTolerateUnknown(tl); !errors.Is(err, ErrMissingValues) {
		t.Fatalf("expected missing values error, got %v", err)
	}
}

func TestValidateRejectsZeroTimestamp(t *testing.T) {
	tl := &Timeline{Samples: []Sample{
		{Second: 0, Value: floatPtr(61), Source: SourceMeasured},
	}}
	if err := Validate(tl); !errors.Is(err, ErrMissingValues) {
		t.Fatalf("expected missing values error, got %v", err)
	}
}

func TestCheckBatchAcceptsExpectedShape(t *testing.T) {
	b := Batch{
		File:    "one.csv",
		Columns: []string{"name", "time", "signal_value", "status"},
		Records: []RawRecord{{Name: "dev", Time: "2017-05-25T10:00:00Z", Value: "61", Status: "awake"}},
	}
	if err := CheckBatch(b); err != nil {
		t.Fatalf("CheckBatch error: %v", err)
	}
}

func TestCheckBatchRejectsEmptyBatch(t *testing.T) {
	b := Batch{File: "one.csv", Columns: []string{"name", "time", "signal_value", "status"}}
	if err := CheckBatch(b); !errors.Is(err, ErrBatchEmpty) {
		t.Fatalf("expected empty batch error, got %v", err)
	}
}

func TestCheckBatchRejectsWrongColumns(t *testing.T) {
	rec := RawRecord{Name: "dev", Time: "2017-05-25T10:00:00Z", Value: "61", Status: "awake"}

	extra := Batch{
		File:    "one.csv",
		Columns: []string{"name", "time", "signal_value", "status", "battery"},
		Records: []RawRecord{rec},
	}
	if err := CheckBatch(extra); !errors.Is(err, ErrWrongColumns) {
		t.Fatalf("expected wrong columns error for extra column, got %v", err)
	}

	shuffled := Batch{
		File:    "two.csv",
		Columns: []string{"time", "name", "signal_value", "status"},
		Records: []RawRecord{rec},
	}
	if err := CheckBatch(shuffled); !errors.Is(err, ErrWrongColumns) {
		t.Fatalf("expected wrong columns error for shuffled columns, got %v", err)
	}
}

func TestCheckBatchRejectsMissingCells(t *testing.T) {
	b := Batch{
		File:    "one.csv",
		Columns: []string{"name", "time", "signal_value", "status"},
		Records: []RawRecord{{Name: "dev", Time: "2017-05-25T10:00:00Z", Value: "61"}},
	}
	if err := CheckBatch(b); !errors.Is(err, ErrMissingValues) {
		t.Fatalf("expected missing values error, got %v", err)
	}
}

func TestCheckBatchReportsReaderFailure(t *testing.T) {
	b := Batch{File: "one.xlsx", Err: errors.New("zip: not a valid zip file")}
	err := CheckBatch(b)
	if !errors.Is(err, ErrBatchUnreadable) {
		t.Fatalf("expected unreadable batch error, got %v", err)
	}
	if !strings.Contains(err.Error(), "zip") {
		t.Errorf("expected reader failure detail in error, got %q", err.Error())
	}
}

func TestValidateReadings(t *testing.T) {
	if err := ValidateReadings(nil); !errors.Is(err, ErrTimelineEmpty) {
		t.Fatalf("expected empty error, got %v", err)
	}
	readings := []Reading{{Time: "2017-05-25T10:00:00Z", Value: 61, Status: "awake"}, {Value: 62}}
	if err := ValidateReadings(readings); !errors.Is(err, ErrMissingValues) {
		t.Fatalf("expected missing values error, got %v", err)
	}
	if err := ValidateReadings(readings[:1]); err != nil {
		t.Fatalf("ValidateReadings error: %v", err)
	}
}
