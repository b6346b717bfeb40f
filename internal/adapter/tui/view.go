package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if m.screen == screenCart {
		b.WriteString(m.cartView())
	} else {
		b.WriteString(m.catalogView())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.helpKeys())))
	b.WriteString("\n")
	return b.String()
}

func (m Model) helpKeys() []key.Binding {
	switch {
	case m.search.Focused():
		return m.keys.searchHelp()
	case m.screen == screenCart:
		return m.keys.cartHelp()
	default:
		return m.keys.catalogHelp()
	}
}

func (m Model) headerView() string {
	shop, cart := m.styles.NavActive, m.styles.Nav
	if m.screen == screenCart {
		shop, cart = m.styles.Nav, m.styles.NavActive
	}

	cartLabel := cart.Render("Cart")
	if m.badge > 0 {
		cartLabel = lipgloss.JoinHorizontal(
			lipgloss.Center, cartLabel, m.styles.Badge.Render(fmt.Sprint(m.badge)),
		)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.styles.Logo.Render("Shopfront"),
		"  ",
		shop.Render("Shop"),
		cartLabel,
	)
}

func (m Model) catalogView() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Products"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(
		"Discover our latest collection. Use search and filters to find exactly what you need.",
	))
	b.WriteString("\n")
	b.WriteString(m.filterView())
	b.WriteString("\n")

	switch m.state {
	case domain.CatalogIdle, domain.CatalogLoading:
		b.WriteString(m.styles.StateCard.Render("Loading products..."))
	case domain.CatalogFailed:
		b.WriteString(m.styles.StateCard.Render(
			m.styles.Error.Render("Something went wrong.") + "\n" + "Failed to load products",
		))
	default:
		if len(m.visible) == 0 {
			b.WriteString(m.styles.StateCard.Render(
				m.styles.Name.Render("No products found") + "\n" +
					"Try adjusting your search or filters.",
			))
			break
		}
		for i, p := range m.visible {
			b.WriteString(m.productView(p, i == m.cursor))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) filterView() string {
	category := m.categories[m.categoryIdx]
	if category == domain.CategoryAll {
		category = "All categories"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.styles.Filter.Render(m.search.View()),
		m.styles.Filter.Render(category),
		m.styles.Filter.Render(domain.SortKeys[m.sortIdx].Label()),
	)
}

func (m Model) productView(p domain.Product, selected bool) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Cursor.Render("› ")
	}

	var action string
	if p.InStock {
		action = m.styles.Button.Render("[Add to Cart]")
	} else {
		action = m.styles.OutOfStock.Render("Out of Stock")
	}

	variant := m.variantOf(p)
	if selected && p.InStock && len(p.Variants) > 1 {
		variant = "‹ " + variant + " ›"
	}

	return fmt.Sprintf(
		"%s%s  %s  %s  Variant: %s  %s",
		cursor,
		m.styles.Name.Render(p.Name),
		m.styles.Category.Render(p.Category),
		m.styles.Price.Render(money(p.Price)),
		variant,
		action,
	)
}

func (m Model) cartView() string {
	var b strings.Builder

	lines := m.cart.Lines()
	summary := m.cart.Summary()

	b.WriteString(m.styles.Title.Render("Your cart"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(cartSubtitle(summary.TotalItems)))
	b.WriteString("\n")

	if len(lines) == 0 {
		b.WriteString(m.styles.StateCard.Render(
			m.styles.Name.Render("Your cart is empty") + "\n" +
				"Add products from the shop to get started.",
		))
		return b.String()
	}

	for i, l := range lines {
		cursor := "  "
		if i == m.cartCursor {
			cursor = m.styles.Cursor.Render("› ")
		}
		fmt.Fprintf(&b, "%s%s  %s  Variant: %s  Qty: %d  %s\n",
			cursor,
			m.styles.Name.Render(l.Product.Name),
			m.styles.Category.Render(l.Product.Category),
			l.Variant,
			l.Quantity,
			m.styles.Price.Render(money(l.Total())),
		)
	}

	b.WriteString(m.styles.Summary.Render(strings.Join([]string{
		m.styles.Name.Render("Order summary"),
		summaryRow("Subtotal", money(summary.Subtotal)),
		summaryRow("Shipping", "Calculated at checkout"),
		m.styles.Total.Render(summaryRow("Total", money(summary.Total))),
	}, "\n")))
	return b.String()
}

func cartSubtitle(totalItems int) string {
	switch totalItems {
	case 0:
		return "Your cart is empty. Add some products to see them here."
	case 1:
		return "You have 1 item in your cart."
	default:
		return fmt.Sprintf("You have %d items in your cart.", totalItems)
	}
}

func summaryRow(label, value string) string {
	return fmt.Sprintf("%-10s %22s", label, value)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
