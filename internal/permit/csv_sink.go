package permit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// CSVSink appends permit records to a flat file, one row per publication.
// Existing rows are never rewritten or reordered; re-running with the same
// input appends nothing.
type CSVSink struct {
	path   string
	logger *zap.Logger
}

// NewCSVSink returns a sink writing to path. The file is created lazily on
// the first append.
func NewCSVSink(path string, logger *zap.Logger) *CSVSink {
	return &CSVSink{path: path, logger: logger}
}

// Path returns the sink's target file.
func (s *CSVSink) Path() string {
	return s.path
}

// Append writes records whose publication ID is not already present in the
// file, in input order, and reports how many rows were added. Records not
// classified as MFH are refused; duplicates (in the file or within the
// batch) are silently skipped.
func (s *CSVSink) Append(records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	seen, err := s.existingIDs()
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return 0, fmt.Errorf("create sink dir %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return 0, fmt.Errorf("open csv %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat csv %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header()); err != nil {
			return 0, fmt.Errorf("write csv header: %w", err)
		}
	}

	added := 0
	for _, r := range records {
		if !r.IsMFH {
			s.logger.Warn("Refusing non-MFH record",
				zap.String("publication_number", r.PublicationID))
			continue
		}
		if r.PublicationID == "" {
			s.logger.Warn("Refusing record without publication number")
			continue
		}
		if _, dup := seen[r.PublicationID]; dup {
			continue
		}
		if err := w.Write(r.Row()); err != nil {
			return added, fmt.Errorf("write csv row %s: %w", r.PublicationID, err)
		}
		seen[r.PublicationID] = struct{}{}
		added++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return added, fmt.Errorf("flush csv %s: %w", s.path, err)
	}
	return added, nil
}

// existingIDs reads the first column of every data row already in the file.
func (s *CSVSink) existingIDs() (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	_, rows, err := ReadRows(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ids, nil
		}
		return nil, err
	}
	for _, row := range rows {
		if len(row) > 0 && row[0] != "" {
			ids[row[0]] = struct{}{}
		}
	}
	return ids, nil
}

// ReadRows loads a sink file and returns its header and data rows. Callers
// that tolerate a missing file should check for fs.ErrNotExist.
func ReadRows(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}
