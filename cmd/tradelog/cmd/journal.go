package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/pkg/id"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query trades",
	Long: `Record, import, export and display trades in the SQLite journal.

Subcommands:
  add     - Record a closed trade
  list    - List trades, newest first
  show    - Show one trade by ID
  delete  - Delete one trade by ID
  import  - Import trades from a CSV or JSON file
  export  - Export trades as CSV

Examples:
  tradelog journal add --pair USD/JPY --direction buy --entry 150.00 --exit 150.50 --lot 0.1
  tradelog journal list --from 2024-01-01 --to 2024-01-31
  tradelog journal import broker.csv`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a closed trade",
	Long: `Record a closed trade. Pips and P/L are computed from the prices and
the account settings unless given explicitly.`,
	Args: cobra.NoArgs,
	RunE: runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete one trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import trades from CSV or JSON",
	Long: `Import trades from a CSV or JSON file ("-" reads stdin). The format is
detected from the content. Invalid rows are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runJournalImport,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades as CSV, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var (
	addPair      string
	addDirection string
	addEntry     float64
	addExit      float64
	addLot       float64
	addPips      float64
	addPnL       float64
	addNotes     string
	addAt        string

	listLimit  int
	listFormat string
	listRange  rangeFlags

	importDryRun bool

	exportOutput string
	exportRange  rangeFlags
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalImportCmd)
	journalCmd.AddCommand(journalExportCmd)

	f := journalAddCmd.Flags()
	f.StringVarP(&addPair, "pair", "p", "", "pair or instrument, e.g. USD/JPY (required)")
	f.StringVarP(&addDirection, "direction", "d", "", "buy or sell (required)")
	f.Float64Var(&addEntry, "entry", 0, "entry price (required)")
	f.Float64Var(&addExit, "exit", 0, "exit price (required)")
	f.Float64VarP(&addLot, "lot", "l", 0, "lot size (required)")
	f.Float64Var(&addPips, "pips", 0, "pips, computed from prices when omitted")
	f.Float64Var(&addPnL, "pnl", 0, "P/L in account currency, computed from prices when omitted")
	f.StringVarP(&addNotes, "notes", "n", "", "free-form notes")
	f.StringVar(&addAt, "at", "", "close time, e.g. \"2024-01-15 14:30\" (default now)")
	for _, name := range []string{"pair", "direction", "entry", "exit", "lot"} {
		journalAddCmd.MarkFlagRequired(name)
	}

	journalListCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum trades to list (0 for all)")
	journalListCmd.Flags().StringVar(&listFormat, "format", "org", "output format: org or csv")
	listRange.register(journalListCmd)

	journalImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate without storing")

	journalExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportRange.register(journalExportCmd)
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loc, err := location()
	if err != nil {
		return err
	}
	dir, err := journal.ParseDirection(addDirection)
	if err != nil {
		return err
	}
	at := time.Now()
	if addAt != "" {
		if at, err = journal.ParseTime(addAt, loc); err != nil {
			return fmt.Errorf("--at: %w", err)
		}
	}

	rec := journal.TradeRecord{
		CreatedAt:  at.UTC(),
		Pair:       market.NormalizePair(addPair),
		Direction:  dir,
		EntryPrice: addEntry,
		ExitPrice:  addExit,
		LotSize:    addLot,
		Pips:       addPips,
		PnL:        addPnL,
		Notes:      addNotes,
	}

	if !cmd.Flags().Changed("pips") || !cmd.Flags().Changed("pnl") {
		st, err := openSettings()
		if err != nil {
			return err
		}
		pips, pnl := journal.ComputeOutcome(rec.Direction, rec.Pair, rec.EntryPrice, rec.ExitPrice, rec.LotSize, st.Derived())
		if !cmd.Flags().Changed("pips") {
			rec.Pips = pips
		}
		if !cmd.Flags().Changed("pnl") {
			rec.PnL = pnl
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err = store.RecordTrade(ctx, rec)
	if err != nil {
		return fmt.Errorf("record trade: %w", err)
	}
	logger.WithField("id", rec.ID).Info("trade recorded")

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loc, err := location()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := listRange.load(ctx, store, loc)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	if listLimit > 0 && len(recs) > listLimit {
		recs = recs[:listLimit]
	}

	out := cmd.OutOrStdout()
	switch listFormat {
	case "org":
		fmt.Fprintln(out, journal.FormatTradesOrg(recs))
		return nil
	case "csv":
		return writeCSV(ctx, out, recs)
	}
	return fmt.Errorf("unknown format %q (want org or csv)", listFormat)
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))

	// Imported trades may keep a broker ID that carries no timestamp.
	if at, err := id.Time(rec.ID); err == nil {
		loc, err := location()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded: %s\n", at.In(loc).Format("2006-01-02 15:04 MST"))
	}
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteTrade(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
	return nil
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loc, err := location()
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	rows, err := journal.ReadAuto(r)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	res := journal.Import(rows, loc)

	errOut := cmd.ErrOrStderr()
	for _, rowErr := range res.Errors {
		fmt.Fprintf(errOut, "✗ %v\n", rowErr)
	}

	stored := 0
	if !importDryRun {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, rec := range res.Trades {
			if _, err := store.RecordTrade(ctx, rec); err != nil {
				return fmt.Errorf("store trade %s: %w", rec.ID, err)
			}
			stored++
		}
	}

	logger.WithField("rows", len(rows)).WithField("invalid", len(res.Errors)).Info("import finished")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d valid, %d invalid, %d stored\n", len(res.Trades), len(res.Errors), stored)
	if len(res.Trades) == 0 && len(res.Errors) > 0 {
		return errors.New("no valid rows")
	}
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loc, err := location()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := exportRange.load(ctx, store, loc)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	slices.Reverse(recs)

	if exportOutput == "" {
		return writeCSV(ctx, cmd.OutOrStdout(), recs)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := writeCSV(ctx, f, recs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d trades to %s\n", len(recs), exportOutput)
	return nil
}

func writeCSV(ctx context.Context, w io.Writer, recs []journal.TradeRecord) error {
	cw := journal.NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, rec := range recs {
		if _, err := cw.RecordTrade(ctx, rec); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	return cw.Close()
}
