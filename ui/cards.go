package ui

import (
	"fmt"
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"quotebot/model"
)

// renderCard produces the terminal rendering for a card render kind.
// Text, loading and error kinds are handled by the caller.
func renderCard(r model.Render) string {
	switch r.Kind {
	case model.RenderPriceCard:
		if r.Price != nil {
			return renderPriceCard(*r.Price)
		}
	case model.RenderStatsCard:
		if r.Stats != nil {
			return renderStatsCard(*r.Stats)
		}
	case model.RenderProductCard:
		if r.Product != nil {
			return renderProductCard(*r.Product)
		}
	case model.RenderBookStockCard:
		if r.Book != nil {
			return renderBookStockCard(*r.Book)
		}
	}
	return ""
}

func renderPriceCard(card model.PriceCard) string {
	delta := fmt.Sprintf("%+.2f", card.Delta)
	deltaStyled := deltaUpStyle.Render("▲ " + delta)
	if card.Delta < 0 {
		deltaStyled = deltaDownStyle.Render("▼ " + delta)
	}

	var b strings.Builder
	b.WriteString(cardValueStyle.Render(card.Symbol) + "\n")
	b.WriteString(cardValueStyle.Render(formatAmount(card.Price)) + "  " + deltaStyled)
	return cardBorderStyle.Render(b.String())
}

func renderStatsCard(card model.StatsCard) string {
	rows := []cardRow{
		{"Rank", fmt.Sprintf("#%d", card.Rank)},
		{"Price", "$" + formatAmount(card.Price)},
		{"Market Cap", "$" + formatAmount(card.MarketCap)},
		{"Dominance", fmt.Sprintf("%.2f%%", card.Dominance)},
		{"Volume (24h)", "$" + formatAmount(card.Volume)},
		{"Volume Change (24h)", fmt.Sprintf("%.2f%%", card.VolumeChange24h)},
		{"Total Supply", formatAmount(card.TotalSupply)},
		{"Circulating Supply", formatAmount(card.CirculatingSupply)},
	}

	var b strings.Builder
	b.WriteString(cardValueStyle.Render(card.Name) + "\n")
	b.WriteString(renderCardRows(rows))
	return cardBorderStyle.Render(b.String())
}

func renderProductCard(card model.ProductCard) string {
	rows := []cardRow{
		{"Price", card.Price},
		{"Release Date", card.ReleaseDate},
	}

	var b strings.Builder
	b.WriteString(cardValueStyle.Render(card.Name) + "\n")
	if card.Description != "" {
		b.WriteString(card.Description + "\n")
	}
	b.WriteString(renderCardRows(rows))
	for _, feature := range card.Features {
		b.WriteString("\n" + cardLabelStyle.Render("• ") + feature)
	}
	return cardBorderStyle.Render(b.String())
}

func renderBookStockCard(card model.BookStockCard) string {
	rows := []cardRow{
		{"ISBN", card.ISBN},
		{"In Stock", card.Stock},
	}
	return cardBorderStyle.Render(renderCardRows(rows))
}

type cardRow struct {
	label string
	value string
}

// renderCardRows aligns values in a column past the widest label.
func renderCardRows(rows []cardRow) string {
	maxLabel := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row.label); w > maxLabel {
			maxLabel = w
		}
	}

	var lines []string
	for _, row := range rows {
		padded := row.label + strings.Repeat(" ", maxLabel-runewidth.StringWidth(row.label))
		lines = append(lines, cardLabelStyle.Render(padded)+"  "+cardValueStyle.Render(row.value))
	}
	return strings.Join(lines, "\n")
}

// cardText is the plain-text form of a render, used for clipboard copy and
// as the message content backing a card.
func cardText(r model.Render) string {
	switch r.Kind {
	case model.RenderPriceCard:
		if r.Price != nil {
			return fmt.Sprintf("%s %s (%+.2f)", r.Price.Symbol, formatAmount(r.Price.Price), r.Price.Delta)
		}
	case model.RenderStatsCard:
		if r.Stats != nil {
			return fmt.Sprintf("%s: rank #%d, price $%s, market cap $%s",
				r.Stats.Name, r.Stats.Rank, formatAmount(r.Stats.Price), formatAmount(r.Stats.MarketCap))
		}
	case model.RenderProductCard:
		if r.Product != nil {
			return fmt.Sprintf("%s: %s (%s)", r.Product.Name, r.Product.Description, r.Product.Price)
		}
	case model.RenderBookStockCard:
		if r.Book != nil {
			return fmt.Sprintf("ISBN %s: %s in stock", r.Book.ISBN, r.Book.Stock)
		}
	}
	return r.Text
}

// formatAmount renders a float without trailing zeros, grouping large
// integer parts with commas.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)

	intPart := s
	fracPart := ""
	if idx := strings.Index(s, "."); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx:]
	}

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	if len(intPart) > 3 {
		var groups []string
		for len(intPart) > 3 {
			groups = append([]string{intPart[len(intPart)-3:]}, groups...)
			intPart = intPart[:len(intPart)-3]
		}
		groups = append([]string{intPart}, groups...)
		intPart = strings.Join(groups, ",")
	}

	if neg {
		intPart = "-" + intPart
	}
	return intPart + fracPart
}
