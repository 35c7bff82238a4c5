package sleepline

import "errors"

var (
	// ErrTimelineAbsent reports a nil timeline where one was required.
	ErrTimelineAbsent = errors.New("timeline is absent")
	// ErrTimelineEmpty reports a timeline or merged input with zero rows.
	ErrTimelineEmpty = errors.New("timeline is empty")
	// ErrMissingValues reports unset required fields in a batch or timeline.
	ErrMissingValues = errors.New("contains missing values")
	// ErrWrongColumns reports an input batch whose columns are not the expected four.
	ErrWrongColumns = errors.New("columns do not match expected layout")
	// ErrBatchEmpty reports an input batch with no data rows.
	ErrBatchEmpty = errors.New("batch contains no rows")
	// ErrBatchUnreadable reports an input file the reader could not parse.
	ErrBatchUnreadable = errors.New("batch could not be read")
	// ErrDataFileDefective reports a signal value that cannot be read as a number.
	ErrDataFileDefective = errors.New("data file is defective")
	// ErrTimestampDefective reports a raw timestamp that cannot be parsed.
	ErrTimestampDefective = errors.New("date-time column is defective")
	// ErrSubjectExists reports a subject that already has rows in the shared store.
	ErrSubjectExists = errors.New("subject already present in store")
	// ErrNoInputFiles reports a missing data directory or one without usable files.
	ErrNoInputFiles = errors.New("no input files found")
	// ErrSubjectPathMismatch reports a data directory that does not end with the subject id.
	ErrSubjectPathMismatch = errors.New("data directory does not match subject id")
)
