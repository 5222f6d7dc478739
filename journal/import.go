package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ReadJSON parses either a JSON array of objects or a single object. Number,
// string and boolean values are kept as their text form.
func ReadJSON(r io.Reader) ([]RawTrade, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var objs []map[string]any
	if data[0] == '{' {
		var one map[string]any
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		objs = append(objs, one)
	} else if err := json.Unmarshal(data, &objs); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	out := make([]RawTrade, 0, len(objs))
	for _, obj := range objs {
		row := RawTrade{}
		for k, v := range obj {
			row[canonicalColumn(k)] = jsonText(v)
		}
		out = append(out, row)
	}
	return out, nil
}

func jsonText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// ReadAuto sniffs the payload: a leading '[' or '{' means JSON, anything
// else is CSV.
func ReadAuto(r io.Reader) ([]RawTrade, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.Peek(1)
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = br.Discard(1)
			continue
		case '[', '{':
			return ReadJSON(br)
		}
		return ReadCSV(br)
	}
}

// RowError ties a validation error to its 1-based data row.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// ImportResult holds the rows that validated and the ones that did not.
type ImportResult struct {
	Trades []TradeRecord
	Errors []RowError
}

// Import normalizes every row. Invalid rows are reported and skipped so a
// single bad line does not reject a whole broker export.
func Import(rows []RawTrade, loc *time.Location) ImportResult {
	var res ImportResult
	for i, row := range rows {
		rec, err := Normalize(row, loc)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: i + 1, Err: err})
			continue
		}
		res.Trades = append(res.Trades, rec)
	}
	return res
}
