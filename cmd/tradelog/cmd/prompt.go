package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Generate an AI trade review prompt",
	Long: `Generate a Markdown prompt that summarizes the journal for review by an
AI chat service. Paste it into the service printed by --provider.

Examples:
  tradelog prompt --all
  tradelog prompt --lang ja --pairs --time --provider claude`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

var (
	promptLang     string
	promptRecent   int
	promptNotes    bool
	promptPairs    bool
	promptTime     bool
	promptRisk     bool
	promptGoals    bool
	promptAll      bool
	promptProvider string
	promptOutput   string
	promptRange    rangeFlags
)

func init() {
	rootCmd.AddCommand(promptCmd)

	f := promptCmd.Flags()
	f.StringVar(&promptLang, "lang", "", "prompt language: en or ja (default from config)")
	f.IntVar(&promptRecent, "recent", 0, "number of recent trades to list (default from config)")
	f.BoolVar(&promptNotes, "notes", false, "include trade notes")
	f.BoolVar(&promptPairs, "pairs", false, "include per-pair statistics")
	f.BoolVar(&promptTime, "time", false, "include time-of-day statistics")
	f.BoolVar(&promptRisk, "risk", false, "include risk management figures")
	f.BoolVar(&promptGoals, "goals", false, "ask for goal setting")
	f.BoolVar(&promptAll, "all", false, "include every optional section")
	f.StringVar(&promptProvider, "provider", "", "chat service to open: chatgpt, claude or gemini")
	f.StringVarP(&promptOutput, "output", "o", "", "write the prompt to a file")
	promptRange.register(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	var providerURL string
	if promptProvider != "" {
		u, err := prompt.ProviderURL(promptProvider)
		if err != nil {
			return err
		}
		providerURL = u
	}

	loc, err := location()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := promptRange.load(cmd.Context(), store, loc)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	opts := prompt.Options{
		Language:     cfg.Language,
		Location:     loc,
		RecentTrades: cfg.Analytics.RecentTrades,
		IncludeNotes: promptNotes || promptAll,
		IncludePairs: promptPairs || promptAll,
		IncludeTime:  promptTime || promptAll,
		IncludeRisk:  promptRisk || promptAll,
		IncludeGoals: promptGoals || promptAll,
	}
	if promptLang != "" {
		opts.Language = promptLang
	}
	if promptRecent > 0 {
		opts.RecentTrades = promptRecent
	}

	text, err := prompt.Generate(trades, opts)
	if errors.Is(err, prompt.ErrNoTrades) {
		return fmt.Errorf("%w: record trades with 'tradelog journal add' first", err)
	}
	if err != nil {
		return err
	}

	if promptOutput != "" {
		if err := os.WriteFile(promptOutput, []byte(text), 0644); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote prompt to %s\n", promptOutput)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), text)
	}

	if providerURL != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Paste the prompt at %s\n", providerURL)
	}
	return nil
}
