// Package ingest reads per-subject recording files into uniform input batches.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sleepline"
)

// SupportedExtensions lists the file types the readers understand.
var SupportedExtensions = []string{".csv", ".fit", ".xlsx"}

// ScanDir returns the sorted paths of supported recording files inside dir.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, sleepline.ErrNoInputFiles)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, supported := range SupportedExtensions {
			if ext == supported {
				files = append(files, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no recording files in %s: %w", dir, sleepline.ErrNoInputFiles)
	}
	return files, nil
}

// ReadFile parses one recording file into a batch based on its extension.
func ReadFile(path string) (sleepline.Batch, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".fit":
		return readFIT(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return sleepline.Batch{}, fmt.Errorf("unsupported recording file: %s", path)
	}
}

func rawRecordAt(row []string) sleepline.RawRecord {
	var rec sleepline.RawRecord
	if len(row) > 0 {
		rec.Name = row[0]
	}
	if len(row) > 1 {
		rec.Time = row[1]
	}
	if len(row) > 2 {
		rec.Value = row[2]
	}
	if len(row) > 3 {
		rec.Status = row[3]
	}
	return rec
}

func batchFromRows(path string, rows [][]string) sleepline.Batch {
	b := sleepline.Batch{File: path}
	if len(rows) == 0 {
		return b
	}
	b.Columns = rows[0]
	b.Records = make([]sleepline.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		b.Records = append(b.Records, rawRecordAt(row))
	}
	return b
}
