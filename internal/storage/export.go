package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
)

// ExportData bundles a run for machine consumption.
type ExportData struct {
	Meta    RunMetadata `json:"meta"`
	Steps   int         `json:"steps"`
	Samples []Sample    `json:"samples"`
}

// ExportJSON writes a full run as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, samples []Sample) error {
	data := ExportData{
		Meta:    meta,
		Steps:   len(samples),
		Samples: samples,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes samples in the same column layout the store uses.
func ExportCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for _, sm := range samples {
		if err := cw.Write(sm.row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
