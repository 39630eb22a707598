package logfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var ErrNoHeader = errors.New("missing header")

type CSVLogfile struct {
	records []*Record
	pos     int
}

func Open(filename string) (*CSVLogfile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a log written by CSVWriter. Empty cells mean the topic had no
// value at that time.
func Parse(r io.Reader) (*CSVLogfile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrNoHeader
	}
	header := rows[0]
	recs := make([]*Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		ts, err := time.Parse(TimeFormat, row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := NewRecord(ts)
		for j := 1; j < len(row) && j < len(header); j++ {
			if row[j] == "" {
				continue
			}
			val, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", line, header[j], err)
			}
			rec.SetValue(header[j], val)
		}
		if n := len(recs); n > 0 {
			recs[n-1].DelayTillNext = ts.Sub(recs[n-1].Time)
		}
		recs = append(recs, rec)
	}
	return &CSVLogfile{records: recs, pos: -1}, nil
}

func (l *CSVLogfile) Next() *Record {
	if l.pos+1 >= len(l.records) {
		return nil
	}
	l.pos++
	return l.records[l.pos]
}

func (l *CSVLogfile) Prev() *Record {
	if l.pos-1 < 0 {
		return nil
	}
	l.pos--
	return l.records[l.pos]
}

func (l *CSVLogfile) Seek(pos int) *Record {
	if pos < 0 || pos >= len(l.records) {
		return nil
	}
	l.pos = pos
	return l.records[pos]
}

func (l *CSVLogfile) Pos() int { return l.pos }

func (l *CSVLogfile) Len() int { return len(l.records) }

func (l *CSVLogfile) Start() time.Time {
	if len(l.records) > 0 {
		return l.records[0].Time
	}
	return time.Time{}
}

func (l *CSVLogfile) End() time.Time {
	if len(l.records) > 0 {
		return l.records[len(l.records)-1].Time
	}
	return time.Time{}
}
