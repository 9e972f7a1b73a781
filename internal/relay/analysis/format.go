package analysis

import (
	"fmt"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Format gera o texto da mensagem do bot a partir do Record
// now entra como parâmetro para a saída ser determinística
func Format(r Record, now time.Time) string {
	var b strings.Builder

	b.WriteString("🎯 BETTING ANALYSIS\n\n")
	fmt.Fprintf(&b, "⚽ Match: %s\n", r.Match)
	fmt.Fprintf(&b, "🏆 League: %s\n", r.League)
	fmt.Fprintf(&b, "📅 Date: %s %s\n\n", r.Date, r.Time)

	b.WriteString("💰 Odds:\n")
	fmt.Fprintf(&b, "  Home: %s\n", r.HomeOdds)
	fmt.Fprintf(&b, "  Draw: %s\n", r.DrawOdds)
	fmt.Fprintf(&b, "  Away: %s\n\n", r.AwayOdds)

	fmt.Fprintf(&b, "✅ Recommendation: %s\n", r.Recommendation)
	fmt.Fprintf(&b, "📊 Confidence: %s\n", r.Confidence)
	fmt.Fprintf(&b, "💵 Stake: %s of bankroll\n", r.Stake)
	fmt.Fprintf(&b, "💎 Value detected: %s\n", r.Value)
	fmt.Fprintf(&b, "🏦 Bookmaker: %s\n\n", r.Bookmaker)

	fmt.Fprintf(&b, "🕐 %s", now.Format(timestampLayout))
	return b.String()
}

// FormatBatch junta várias análises numa única mensagem, separadas por linha
func FormatBatch(title string, records []Record, now time.Time) string {
	parts := make([]string, 0, len(records)+1)
	if title != "" {
		parts = append(parts, title)
	}
	for _, r := range records {
		parts = append(parts, Format(r, now))
	}
	return strings.Join(parts, "\n\n──────────\n\n")
}
