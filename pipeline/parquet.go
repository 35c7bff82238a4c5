package pipeline

import (
	"math"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type subjectTableRow struct {
	ElapsedSeconds int64   `parquet:"name=elapsed_seconds, type=INT64"`
	SignalValue    float64 `parquet:"name=signal_value, type=DOUBLE"`
	Status         string  `parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	NumDays        int64   `parquet:"name=num_days, type=INT64"`
	SubjectID      int64   `parquet:"name=subject_id, type=INT64"`
}

func writeTableParquet(path string, rows []OutputRow) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(subjectTableRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rows {
		status := ""
		if r.Status != nil {
			status = *r.Status
		}
		row := subjectTableRow{
			ElapsedSeconds: int64(r.ElapsedSeconds),
			SignalValue:    valueOrNaN(r.SignalValue),
			Status:         status,
			NumDays:        int64(r.NumDays),
			SubjectID:      int64(r.SubjectID),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
