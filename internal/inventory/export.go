package inventory

import (
	"html"
	"regexp"
	"strings"

	"github.com/osse101/KnightlyTreasures_Go/internal/currency"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Icon returns the item's icon URL or the shop's default bag
func Icon(item domain.Item) string {
	if item.Icon != nil && *item.Icon != "" {
		return *item.Icon
	}
	return DefaultIcon
}

// Description returns the item's description or the shop's stock line
func Description(item domain.Item) string {
	if item.Description != nil && *item.Description != "" {
		return *item.Description
	}
	return DefaultDescription
}

// ExportText renders item in the plain-text layout D&D Beyond accepts for custom items.
// price is the gold cost to print, which may differ from the catalog price after honor.
func ExportText(item domain.Item, price int) string {
	var b strings.Builder

	b.WriteString("**" + item.Name + "**\n")
	b.WriteString(item.TypeLabel() + ", " + strings.ToLower(string(item.Rarity)) + "\n")
	b.WriteString("Cost: " + currency.FormatFull(price) + " gp\n")

	if item.Properties != nil {
		b.WriteString("Properties: " + *item.Properties + "\n")
	}
	if item.Attunement != nil {
		b.WriteString("Requires Attunement: " + *item.Attunement + "\n")
	}
	if item.Damage != nil {
		b.WriteString("Damage: " + *item.Damage + "\n")
	}

	b.WriteString("\n")

	if item.Flavour != nil {
		b.WriteString("*" + *item.Flavour + "*\n\n")
	}
	if item.Description != nil {
		b.WriteString(*item.Description)
	}
	return b.String()
}

// RenderDescription converts the catalog's light markdown to HTML:
// **bold**, blank-line paragraphs and single line breaks. Other markup is escaped.
func RenderDescription(desc string) string {
	out := html.EscapeString(desc)
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = strings.ReplaceAll(out, "\n\n", "</p><p>")
	return strings.ReplaceAll(out, "\n", "<br>")
}
