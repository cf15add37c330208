// Package export writes hourly cost profiles as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/offshore/core/report"
)

// WriteJSON writes the profile to w as a JSON array.
func WriteJSON(w io.Writer, profile []report.Hour) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}

// WriteCSV writes the profile to w with a header row.
func WriteCSV(w io.Writer, profile []report.Hour) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hour", "ticks", "cost", "mean_fraction"}); err != nil {
		return err
	}
	for _, h := range profile {
		rec := []string{
			strconv.Itoa(h.Hour),
			strconv.FormatUint(h.Ticks, 10),
			report.Money(h.Cost).String(),
			strconv.FormatFloat(h.MeanFraction, 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write picks the format from the extension of name (.csv or .json).
func Write(w io.Writer, name string, profile []report.Hour) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return WriteCSV(w, profile)
	case ".json":
		return WriteJSON(w, profile)
	default:
		return fmt.Errorf("unsupported export format %q", filepath.Ext(name))
	}
}
