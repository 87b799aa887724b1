package jobposting

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	kerrors "github.com/kiteco/fraudfilter/kite-golib/errors"
	"github.com/kiteco/fraudfilter/kite-golib/fileutil"
)

// LoadOptions configures how a dataset is read and split.
type LoadOptions struct {
	// Separator between fields, ',' if zero
	Separator rune
	HasHeader bool
	// TestFraction of the rows go to the test set, must be in (0, 1)
	TestFraction float64
	Seed         int64
	// Stratify splits each label class separately so both sets keep the class ratio
	Stratify bool
	// Schema of a row, DefaultSchema() if empty
	Schema Schema
	// OptionalLabel accepts rows without the label column, read as not fraudulent
	OptionalLabel bool
}

// DefaultLoadOptions matches the job postings csv: comma separated with a header,
// 20% of rows held out with seed 0.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Separator:    ',',
		HasHeader:    true,
		TestFraction: 0.2,
		Schema:       DefaultSchema(),
	}
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.Separator == 0 {
		o.Separator = ','
	}
	if len(o.Schema.Columns) == 0 {
		o.Schema = DefaultSchema()
	}
	return o
}

// Load reads the dataset at path, local or s3://, and splits it into train and test
// sets. Nothing is returned on error.
func Load(path string, opts LoadOptions) (Split, error) {
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		return Split{}, &DataLoadError{Path: path, Err: fmt.Errorf("test fraction %v not in (0, 1)", opts.TestFraction)}
	}

	records, err := Read(path, opts)
	if err != nil {
		return Split{}, err
	}
	if len(records) == 0 {
		return Split{}, &DataLoadError{Path: path, Err: errors.New("no records")}
	}

	split, err := TrainTestSplit(records, opts.TestFraction, opts.Seed, opts.Stratify)
	if err != nil {
		return Split{}, &DataLoadError{Path: path, Err: err}
	}
	return split, nil
}

// Read returns every record of the dataset at path. If the path ends with .gz the
// contents are decompressed first.
func Read(path string, opts LoadOptions) (records []Record, err error) {
	opts = opts.withDefaults()
	if err := checkSchema(opts.Schema); err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}

	r, err := fileutil.NewReader(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer kerrors.Defer(&err, r.Close)

	var src io.Reader = r
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, &DataLoadError{Path: path, Err: err}
		}
		defer gz.Close()
		src = gz
	}

	records, err = ReadFrom(src, opts)
	if err != nil {
		var dle *DataLoadError
		if errors.As(err, &dle) {
			dle.Path = path
			return nil, dle
		}
		return nil, &DataLoadError{Path: path, Err: err}
	}
	return records, nil
}

// ReadFrom parses records from r. Errors are *DataLoadError without a path.
func ReadFrom(r io.Reader, opts LoadOptions) ([]Record, error) {
	opts = opts.withDefaults()
	if err := checkSchema(opts.Schema); err != nil {
		return nil, &DataLoadError{Err: err}
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Separator
	cr.FieldsPerRecord = -1

	unlabeled := opts.Schema.Unlabeled()

	var records []Record
	for line := 1; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Line: line, Err: err}
		}
		if line == 1 && opts.HasHeader {
			continue
		}

		schema := opts.Schema
		if opts.OptionalLabel && len(fields) == unlabeled.Len() {
			schema = unlabeled
		}
		rec, perr := parseRow(fields, schema)
		if perr != nil {
			perr.Line = line
			return nil, perr
		}
		records = append(records, rec)
	}
	return records, nil
}

func checkSchema(s Schema) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, c := range s.Columns {
		if !hasField(c) {
			return fmt.Errorf("no %s field named %s in job posting record", c.Type, c.Name)
		}
	}
	return nil
}

func parseRow(fields []string, s Schema) (Record, *DataLoadError) {
	if len(fields) != s.Len() {
		return Record{}, &DataLoadError{Err: fmt.Errorf("expected %d columns, got %d", s.Len(), len(fields))}
	}

	var rec Record
	for _, c := range s.Columns {
		raw := fields[c.Position]
		if !utf8.ValidString(raw) {
			return Record{}, &DataLoadError{Column: c.Name, Err: errors.New("invalid utf-8")}
		}

		switch c.Type {
		case Text:
			*textFields[c.Name](&rec) = raw
		case Float:
			v, err := parseFloat(raw)
			if err != nil {
				return Record{}, &DataLoadError{Column: c.Name, Err: err}
			}
			*floatFields[c.Name](&rec) = v
		case Bool:
			v, err := parseBool(raw)
			if err != nil {
				return Record{}, &DataLoadError{Column: c.Name, Err: err}
			}
			rec.Fraudulent = v
		}
	}
	return rec, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", s)
}
