// journal/csv.go
package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVHeader is the column order written by CSVJournal and preferred by
// ReadCSV.
var CSVHeader = []string{
	"id", "created_at", "pair", "direction", "entry_price", "exit_price", "lot_size", "pips", "pnl", "notes",
}

// CSVJournal appends trades to a CSV file. It is the export side of the
// journal; the SQLite store remains the source of truth.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

var _ Journal = (*CSVJournal)(nil)

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	j := NewCSVWriter(f)
	j.f = f
	if err := j.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return j, nil
}

// NewCSVWriter writes to w without owning it. Call WriteHeader first when w
// is empty.
func NewCSVWriter(w io.Writer) *CSVJournal {
	return &CSVJournal{w: csv.NewWriter(w)}
}

func (j *CSVJournal) WriteHeader() error {
	return j.writeHeader()
}

func (j *CSVJournal) writeHeader() error {
	if err := j.w.Write(CSVHeader); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) RecordTrade(_ context.Context, t TradeRecord) (TradeRecord, error) {
	err := j.w.Write([]string{
		t.ID,
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.Pair,
		string(t.Direction),
		formatNum(t.EntryPrice),
		formatNum(t.ExitPrice),
		formatNum(t.LotSize),
		formatNum(t.Pips),
		formatNum(t.PnL),
		t.Notes,
	})
	if err != nil {
		return TradeRecord{}, err
	}
	j.w.Flush()
	return t, j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	if j.f != nil {
		return j.f.Close()
	}
	return nil
}

func formatNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// headerAliases maps spellings seen in broker and spreadsheet exports to
// the canonical column names.
var headerAliases = map[string]string{
	"date":     "created_at",
	"datetime": "created_at",
	"time":     "created_at",
	"symbol":   "pair",
	"side":     "direction",
	"type":     "direction",
	"entry":    "entry_price",
	"open":     "entry_price",
	"exit":     "exit_price",
	"close":    "exit_price",
	"lot":      "lot_size",
	"lots":     "lot_size",
	"volume":   "lot_size",
	"profit":   "pnl",
	"p/l":      "pnl",
	"memo":     "notes",
	"note":     "notes",
	"comment":  "notes",
}

func canonicalColumn(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff")
	if c, ok := headerAliases[h]; ok {
		return c
	}
	return strings.ReplaceAll(h, " ", "_")
}

// ReadCSV parses a CSV with a header row into raw rows. Values are not
// validated; pass the rows to Import.
func ReadCSV(r io.Reader) ([]RawTrade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = canonicalColumn(h)
	}

	var out []RawTrade
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := RawTrade{}
		for i, c := range cols {
			if i < len(rec) {
				row[c] = strings.TrimSpace(rec[i])
			}
		}
		out = append(out, row)
	}
	return out, nil
}
