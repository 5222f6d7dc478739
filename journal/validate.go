package journal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradelog/market"
)

// RawTrade is an untyped row from an import file or CLI flags, keyed by the
// snake_case column names.
type RawTrade map[string]string

// RequiredKeys must be present and non-empty in every RawTrade.
var RequiredKeys = []string{
	"created_at", "pair", "direction", "entry_price", "exit_price", "lot_size", "pips", "pnl",
}

// FieldError names the column that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC3339 timestamps and the common spreadsheet layouts.
// Layouts without an offset are read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// Normalize validates a raw row and converts it into a TradeRecord. Every
// failing field is reported; the result is a join of *FieldError values.
func Normalize(raw RawTrade, loc *time.Location) (TradeRecord, error) {
	var errs []error
	for _, k := range RequiredKeys {
		if strings.TrimSpace(raw[k]) == "" {
			errs = append(errs, &FieldError{Field: k, Reason: "required"})
		}
	}
	if len(errs) > 0 {
		return TradeRecord{}, errors.Join(errs...)
	}

	var rec TradeRecord

	dir, err := ParseDirection(raw["direction"])
	if err != nil {
		errs = append(errs, &FieldError{Field: "direction", Reason: err.Error()})
	}
	rec.Direction = dir

	created, err := ParseTime(raw["created_at"], loc)
	if err != nil {
		errs = append(errs, &FieldError{Field: "created_at", Reason: err.Error()})
	}
	rec.CreatedAt = created.UTC()

	num := func(field string, dst *float64) {
		v, err := parseNumber(raw[field])
		if err != nil {
			errs = append(errs, &FieldError{Field: field, Reason: err.Error()})
			return
		}
		*dst = v
	}
	num("entry_price", &rec.EntryPrice)
	num("exit_price", &rec.ExitPrice)
	num("lot_size", &rec.LotSize)
	num("pips", &rec.Pips)
	num("pnl", &rec.PnL)

	rec.Pair = market.NormalizePair(raw["pair"])
	rec.Notes = strings.TrimSpace(raw["notes"])
	rec.ID = strings.TrimSpace(raw["id"])

	if len(errs) > 0 {
		return TradeRecord{}, errors.Join(errs...)
	}
	if err := Validate(rec); err != nil {
		return TradeRecord{}, err
	}
	return rec, nil
}

// Validate checks an already typed record, as produced by the CLI.
func Validate(t TradeRecord) error {
	var errs []error
	if t.Pair == "" {
		errs = append(errs, &FieldError{Field: "pair", Reason: "required"})
	}
	if t.Direction != Buy && t.Direction != Sell {
		errs = append(errs, &FieldError{Field: "direction", Reason: "must be buy or sell"})
	}
	if t.CreatedAt.IsZero() {
		errs = append(errs, &FieldError{Field: "created_at", Reason: "required"})
	}
	for field, v := range map[string]float64{
		"entry_price": t.EntryPrice,
		"exit_price":  t.ExitPrice,
		"lot_size":    t.LotSize,
	} {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, &FieldError{Field: field, Reason: "must be a positive number"})
		}
	}
	for field, v := range map[string]float64{"pips": t.Pips, "pnl": t.PnL} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, &FieldError{Field: field, Reason: "must be a finite number"})
		}
	}
	return errors.Join(errs...)
}

// parseNumber accepts thousands separators and a leading '+' the way
// spreadsheet exports write them.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}
