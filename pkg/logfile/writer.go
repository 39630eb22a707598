package logfile

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

type CSVWriter struct {
	cw            *csv.Writer
	topics        []string
	headerWritten bool
}

// NewCSVWriter writes one column per topic after the time column.
func NewCSVWriter(w io.Writer, topics []string) *CSVWriter {
	return &CSVWriter{
		cw:     csv.NewWriter(w),
		topics: topics,
	}
}

// Write adds a row. Topics without a value are left empty.
func (c *CSVWriter) Write(ts time.Time, value func(topic string) (float64, bool)) error {
	if !c.headerWritten {
		if err := c.cw.Write(append([]string{"Time"}, c.topics...)); err != nil {
			return err
		}
		c.headerWritten = true
	}
	record := make([]string, 0, len(c.topics)+1)
	record = append(record, ts.Format(TimeFormat))
	for _, k := range c.topics {
		v, ok := value(k)
		if !ok {
			record = append(record, "")
			continue
		}
		record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return c.cw.Write(record)
}

func (c *CSVWriter) Flush() error {
	c.cw.Flush()
	return c.cw.Error()
}
