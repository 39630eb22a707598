// Package logfile records bus readings to CSV and plays them back.
package logfile

import "time"

// TimeFormat is the layout of the first CSV column.
const TimeFormat = "2006-01-02T15:04:05.000"

type Logfile interface {
	Next() *Record
	Prev() *Record
	Seek(int) *Record
	Pos() int
	Len() int
	Start() time.Time
	End() time.Time
}

type Record struct {
	Time          time.Time
	DelayTillNext time.Duration
	Values        []RecordValue
}

type RecordValue struct {
	Key   string
	Value float64
}

func NewRecord(t time.Time) *Record {
	return &Record{Time: t}
}

func (r *Record) SetValue(key string, v float64) {
	for i := range r.Values {
		if r.Values[i].Key == key {
			r.Values[i].Value = v
			return
		}
	}
	r.Values = append(r.Values, RecordValue{Key: key, Value: v})
}

func (r *Record) Value(key string) (float64, bool) {
	for _, v := range r.Values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return 0, false
}
