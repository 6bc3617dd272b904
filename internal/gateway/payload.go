package gateway

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// ScoringRequest is a wire payload for the model-serving endpoint. Body
// serializes it to JSON. Serialization is permissive about non-finite floats:
// NaN, Infinity, and -Infinity are emitted as bare tokens, the way Python's
// json.dumps(allow_nan=True) writes them, which is what MLflow-style servers
// accept. That rules out encoding/json for the numeric parts, so the two
// fixed shapes are written out directly.
type ScoringRequest interface {
	Body() ([]byte, error)
}

// RecordRequest wraps a single row as length-1 columns:
// {"inputs": {feature: [value]}}.
type RecordRequest struct {
	record ValidatedRecord
}

// NewRecordRequest builds the record-style payload for one validated record.
func NewRecordRequest(record ValidatedRecord) *RecordRequest {
	return &RecordRequest{record: record}
}

func (r *RecordRequest) Body() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"inputs":{`)
	for i, name := range r.record.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(`:[`)
		buf.WriteString(formatFloat(r.record.Values[i]))
		buf.WriteByte(']')
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// SplitRequest is the tabular dataframe_split shape:
// {"dataframe_split": {"columns": [...], "index": [...], "data": [[...]]}}.
// Row indices run 0..n-1; row values follow the column order of the first
// record, which is the schema order.
type SplitRequest struct {
	columns []string
	rows    [][]float64
}

// NewSplitRequest builds the tabular payload from one or more validated
// records sharing the same column order.
func NewSplitRequest(records ...ValidatedRecord) *SplitRequest {
	req := &SplitRequest{}
	for _, record := range records {
		if req.columns == nil {
			req.columns = record.Columns
		}
		req.rows = append(req.rows, record.Values)
	}
	return req
}

func (r *SplitRequest) Body() ([]byte, error) {
	columns, err := json.Marshal(r.columns)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"dataframe_split":{"columns":`)
	buf.Write(columns)
	buf.WriteString(`,"index":[`)
	for i := range r.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(i))
	}
	buf.WriteString(`],"data":[`)
	for i, row := range r.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(formatFloat(v))
		}
		buf.WriteByte(']')
	}
	buf.WriteString(`]}}`)
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
