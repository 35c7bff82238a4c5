package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sleepline"
)

func readXLSX(path string) (sleepline.Batch, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return sleepline.Batch{}, fmt.Errorf("open xlsx file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return sleepline.Batch{File: path}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return sleepline.Batch{}, fmt.Errorf("read xlsx sheet %s: %w", sheets[0], err)
	}
	return batchFromRows(path, rows), nil
}
