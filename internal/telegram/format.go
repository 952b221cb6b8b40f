package telegram

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

// FormatPayout renders a payout such as "CPA $10.00 + Fixed $200.00".
func FormatPayout(p domain.Payout) string {
	var parts []string
	if p.CPAAmount != nil {
		parts = append(parts, "CPA $"+domain.FormatAmount(*p.CPAAmount))
	}
	if p.FixedAmount != nil {
		parts = append(parts, "Fixed $"+domain.FormatAmount(*p.FixedAmount))
	}
	if len(parts) == 0 {
		return string(p.Kind)
	}
	return strings.Join(parts, " + ")
}

// PlainText strips markup from an offer description. Text that does not
// parse as HTML is returned trimmed.
func PlainText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// FormatResolvedOffer renders one offer line block for the bot listing.
func FormatResolvedOffer(o domain.ResolvedOffer, descriptionLen int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔸 %s\n", EscapeMarkdown(o.Title)))
	sb.WriteString(fmt.Sprintf("💰 %s", FormatPayout(o.EffectivePayout)))
	if o.HasCustomPayout {
		sb.WriteString(" _(custom)_")
	}
	sb.WriteString("\n")
	if desc := PlainText(o.Description); desc != "" {
		sb.WriteString(EscapeMarkdown(Truncate(desc, descriptionLen)))
		sb.WriteString("\n")
	}
	return sb.String()
}
