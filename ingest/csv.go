package ingest

import (
	"encoding/csv"
	"fmt"
	"os"

	"sleepline"
)

func readCSV(path string) (sleepline.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return sleepline.Batch{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Column drift between files is caught by the batch check, not here.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return sleepline.Batch{}, fmt.Errorf("read csv file: %w", err)
	}
	return batchFromRows(path, rows), nil
}
