package cmd

import (
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View or change the account settings",
	Long: `View or change the lot sizes, pip sizes and USD/JPY rate used to compute
pips and P/L for new trades.

Subcommands:
  show    - Print the settings and the derived pip values
  set     - Change individual values (key=value)
  preset  - Apply a named preset
  reset   - Restore the defaults
  watch   - Print the settings whenever the file changes

Examples:
  tradelog settings set fx_lot_size=10000 usd_jpy_rate=148.5
  tradelog settings preset fx-domestic --rate 150`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings and the derived pip values",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change individual values",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSettingsSet,
}

var settingsPresetCmd = &cobra.Command{
	Use:       "preset <name>",
	Short:     "Apply a named preset",
	Args:      cobra.ExactArgs(1),
	ValidArgs: settings.PresetNames(),
	RunE:      runSettingsPreset,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the defaults",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the settings whenever the file changes",
	Args:  cobra.NoArgs,
	RunE:  runSettingsWatch,
}

var presetRate float64

// settingFields maps the file keys to their fields.
var settingFields = map[string]func(*settings.Settings) *float64{
	"fx_lot_size":     func(s *settings.Settings) *float64 { return &s.FXLotSize },
	"fx_pip_size_jpy": func(s *settings.Settings) *float64 { return &s.FXPipSizeJPY },
	"fx_pip_size_usd": func(s *settings.Settings) *float64 { return &s.FXPipSizeUSD },
	"gold_lot_size":   func(s *settings.Settings) *float64 { return &s.GoldLotSize },
	"gold_pip_size":   func(s *settings.Settings) *float64 { return &s.GoldPipSize },
	"usd_jpy_rate":    func(s *settings.Settings) *float64 { return &s.USDJPYRate },
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPresetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWatchCmd)

	settingsPresetCmd.Flags().Float64Var(&presetRate, "rate", 0, "also set the USD/JPY rate")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), st.Derived())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	type change struct {
		field func(*settings.Settings) *float64
		v     float64
	}
	var changes []change
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%q: want key=value", arg)
		}
		field, ok := settingFields[strings.TrimSpace(key)]
		if !ok {
			return fmt.Errorf("unknown setting %q", key)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		changes = append(changes, change{field, v})
	}

	st, err := openSettings()
	if err != nil {
		return err
	}
	_, err = st.Update(func(s *settings.Settings) {
		for _, c := range changes {
			*c.field(s) = c.v
		}
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	printSettings(cmd.OutOrStdout(), st.Derived())
	return nil
}

func runSettingsPreset(cmd *cobra.Command, args []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}
	if _, err := st.ApplyPreset(args[0], presetRate); err != nil {
		return fmt.Errorf("apply preset: %w (known: %s)", err, strings.Join(settings.PresetNames(), ", "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Applied %s\n\n", settings.PresetLabel(args[0]))
	printSettings(cmd.OutOrStdout(), st.Derived())
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}
	if err := st.Reset(); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	printSettings(cmd.OutOrStdout(), st.Derived())
	return nil
}

func runSettingsWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openSettings()
	if err != nil {
		return err
	}
	w, err := settings.NewWatcher(st, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	unsubscribe := st.Subscribe(func(_ settings.Settings, d settings.Derived) {
		fmt.Fprintln(out, "--------------------------------------------------")
		printSettings(out, d)
	})
	defer unsubscribe()

	printSettings(out, st.Derived())
	logger.WithField("path", st.Path()).Info("watching settings")

	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func printSettings(w io.Writer, d settings.Derived) {
	s := d.Settings
	fmt.Fprintf(w, "FX preset:        %s\n", s.PresetFX)
	fmt.Fprintf(w, "Gold preset:      %s\n", s.PresetGold)
	fmt.Fprintf(w, "fx_lot_size:      %g\n", s.FXLotSize)
	fmt.Fprintf(w, "fx_pip_size_jpy:  %g\n", s.FXPipSizeJPY)
	fmt.Fprintf(w, "fx_pip_size_usd:  %g\n", s.FXPipSizeUSD)
	fmt.Fprintf(w, "gold_lot_size:    %g\n", s.GoldLotSize)
	fmt.Fprintf(w, "gold_pip_size:    %g\n", s.GoldPipSize)
	fmt.Fprintf(w, "usd_jpy_rate:     %g\n", s.USDJPYRate)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Pip value per lot: JPY pairs %.0f, USD pairs %.0f, gold %.0f\n",
		d.FXJPY.PipValuePerLot, d.FXUSD.PipValuePerLot, d.Gold.PipValuePerLot)
}
