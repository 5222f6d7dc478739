package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block. Structured facts
// go in the PROPERTIES drawer; the notes and a review heading follow.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Pair, t.Direction, shortID(t.ID))
	created := t.CreatedAt.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":CREATED_AT: %s\n", created))
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.Pair))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":LOT_SIZE: %g\n", t.LotSize))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %g\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %g\n", t.ExitPrice))
	b.WriteString(fmt.Sprintf(":PIPS: %.1f\n", t.Pips))
	b.WriteString(fmt.Sprintf(":PNL: %.0f\n", t.PnL))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n")
	if t.Notes != "" {
		b.WriteString(t.Notes)
		b.WriteString("\n")
	} else {
		b.WriteString("- \n")
	}
	b.WriteString("\n*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
