package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search      key.Binding
	Blur        key.Binding
	Category    key.Binding
	Sort        key.Binding
	Up          key.Binding
	Down        key.Binding
	PrevVariant key.Binding
	NextVariant key.Binding
	Add         key.Binding
	Switch      key.Binding
	Remove      key.Binding
	Clear       key.Binding
	Checkout    key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"), key.WithHelp("/", "search"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc", "enter"), key.WithHelp("esc", "done"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"), key.WithHelp("c", "category"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"), key.WithHelp("s", "sort"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("left", "h"), key.WithHelp("←/h", "variant"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("right", "l"), key.WithHelp("→/l", "variant"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter", "a"), key.WithHelp("enter", "add to cart"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"), key.WithHelp("tab", "shop/cart"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"), key.WithHelp("x", "remove"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"), key.WithHelp("C", "clear cart"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("o"), key.WithHelp("o", "checkout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"), key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k keyMap) catalogHelp() []key.Binding {
	return []key.Binding{
		k.Search, k.Category, k.Sort, k.Up, k.Down,
		k.NextVariant, k.Add, k.Switch, k.Quit,
	}
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.Blur}
}

func (k keyMap) cartHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Remove, k.Clear, k.Checkout, k.Switch, k.Quit,
	}
}
