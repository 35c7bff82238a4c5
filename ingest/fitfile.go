package ingest

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/tormoder/fit"

	"sleepline"
)

// fitStatus marks samples that come from a wearable rather than the bed sensor
// export, which carries its own status column.
const fitStatus = "device"

func readFIT(path string) (sleepline.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return sleepline.Batch{}, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return sleepline.Batch{}, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return sleepline.Batch{}, fmt.Errorf("activity FIT expected: %w", err)
	}

	device := fmt.Sprint(decoded.FileId.GetProduct())
	if device == "" {
		device = fitStatus
	}

	records := make([]sleepline.RawRecord, 0, len(activity.Records))
	for _, rec := range activity.Records {
		if rec == nil || rec.HeartRate == math.MaxUint8 {
			continue
		}
		if rec.Timestamp.IsZero() || fit.IsBaseTime(rec.Timestamp) {
			continue
		}
		records = append(records, sleepline.RawRecord{
			Name:   device,
			Time:   rec.Timestamp.UTC().Format(sleepline.RawTimeLayout),
			Value:  strconv.Itoa(int(rec.HeartRate)),
			Status: fitStatus,
		})
	}
	columns := make([]string, len(sleepline.RequiredColumns))
	copy(columns, sleepline.RequiredColumns)
	return sleepline.Batch{File: path, Columns: columns, Records: records}, nil
}
