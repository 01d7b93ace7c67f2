// Package sink persists an ordered batch outcome as a two-column table.
// Writes are atomic: the destination either receives the complete table or
// is left untouched.
package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/turtacn/chem2smiles/internal/resolver"
	"github.com/turtacn/chem2smiles/pkg/errors"
)

// notFoundMarker is written in place of a SMILES string for every
// unresolved entry, whatever its failure reason.
const notFoundMarker = "Not Found"

// Format selects the table delimiter.
type Format int

const (
	// FormatCSV writes comma-separated rows.
	FormatCSV Format = iota
	// FormatTSV writes tab-separated rows.
	FormatTSV
)

func (f Format) delimiter() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// DetectFormat picks the delimiter for path: an explicit override ("csv" or
// "tsv") wins, otherwise a ".tsv" extension selects tabs and everything
// else commas.
func DetectFormat(path, override string) Format {
	switch override {
	case "csv":
		return FormatCSV
	case "tsv":
		return FormatTSV
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return FormatTSV
	}
	return FormatCSV
}

// Write persists results to path in input order: a header row followed by
// one row per entry.  Resolved entries carry their SMILES verbatim;
// unresolved entries carry the literal "Not Found".  The table is written
// to a temporary file in the destination directory and renamed into place,
// so a failure never leaves a partial file behind.
func Write(results []resolver.Result, path string, format Format) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".chem2smiles-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrCodeOutputUnwritable, "cannot create temporary file in %q", dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	w.Comma = format.delimiter()

	if err := w.Write([]string{"Name", "SMILES"}); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputUnwritable, "cannot write header row")
	}
	for _, r := range results {
		row := []string{r.Name, notFoundMarker}
		if r.Resolved() {
			row[1] = r.SMILES
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, errors.ErrCodeOutputUnwritable, "cannot write row for %q", r.Name)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputUnwritable, "cannot flush output")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputUnwritable, "cannot sync output")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputUnwritable, "cannot close output")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, errors.ErrCodeOutputUnwritable, "cannot move results into place at %q", path)
	}
	tmpName = "" // rename succeeded; nothing to clean up
	return nil
}
