// Package tui renders the storefront in the terminal: the catalog browse
// screen and the cart review screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/service"
)

type CatalogLoader interface {
	Load(context.Context) ([]domain.Product, error)
}

type Cart interface {
	Add(p domain.Product, variant string)
	Remove(productID domain.ProductID, variant string)
	Clear()
	Lines() []domain.CartLine
	Summary() domain.OrderSummary
	TotalItems() int
	Subscribe(service.CartObserver) (unsubscribe func())
}

type screen int

const (
	screenCatalog screen = iota
	screenCart
)

func (s screen) next() screen {
	if s == screenCatalog {
		return screenCart
	}
	return screenCatalog
}

type (
	productsLoadedMsg struct {
		products []domain.Product
		err      error
	}

	cartChangedMsg struct {
		totalItems int
	}
)

// cartSignal carries cart changes from the store observer into the
// program. Only the latest total matters, so a pending signal absorbs
// the following ones.
type cartSignal struct {
	totalItems atomic.Int64
	ch         chan struct{}
}

func newCartSignal() *cartSignal {
	return &cartSignal{ch: make(chan struct{}, 1)}
}

func (s *cartSignal) observe(evt domain.CartEvent) {
	s.totalItems.Store(int64(evt.TotalItems))
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

type Model struct {
	ctx         context.Context
	loader      CatalogLoader
	cart        Cart
	signal      *cartSignal
	unsubscribe func()

	keys   keyMap
	help   help.Model
	styles Styles
	width  int

	screen screen
	status string

	search      textinput.Model
	categories  []string
	categoryIdx int
	sortIdx     int

	state    domain.CatalogState
	loadErr  error
	products []domain.Product
	visible  []domain.Product
	cursor   int
	variants map[domain.ProductID]int

	cartCursor int
	badge      int
}

// New subscribes the model to cart. Call [Model.Close] when the program
// is done.
func New(ctx context.Context, loader CatalogLoader, cart Cart) Model {
	search := textinput.New()
	search.Placeholder = "Search products..."
	search.Prompt = "/ "
	search.CharLimit = 64

	signal := newCartSignal()

	return Model{
		ctx:         ctx,
		loader:      loader,
		cart:        cart,
		signal:      signal,
		unsubscribe: cart.Subscribe(signal.observe),
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      DefaultStyles(),
		search:      search,
		categories:  []string{domain.CategoryAll},
		state:       domain.CatalogLoading,
		variants:    make(map[domain.ProductID]int),
		badge:       cart.TotalItems(),
	}
}

func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProducts(), m.waitForCartChange())
}

func (m Model) loadProducts() tea.Cmd {
	return func() tea.Msg {
		ps, err := m.loader.Load(m.ctx)
		return productsLoadedMsg{products: ps, err: err}
	}
}

func (m Model) waitForCartChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.signal.ch:
			return cartChangedMsg{int(m.signal.totalItems.Load())}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case productsLoadedMsg:
		return m.onProductsLoaded(msg), nil

	case cartChangedMsg:
		m.badge = msg.totalItems
		return m, m.waitForCartChange()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			m.screen = m.screen.next()
			m.status = ""
			return m, nil
		}
		if m.screen == screenCart {
			return m.updateCart(msg), nil
		}
		return m.updateCatalog(msg)
	}
	return m, nil
}

func (m Model) onProductsLoaded(msg productsLoadedMsg) Model {
	if msg.err != nil {
		m.state = domain.CatalogFailed
		m.loadErr = msg.err
		return m
	}
	m.state = domain.CatalogLoaded
	m.loadErr = nil
	m.products = msg.products
	m.categories = append([]string{domain.CategoryAll}, service.Categories(msg.products)...)
	m.categoryIdx = 0
	return m.refilter()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Blur) {
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m.refilter(), cmd
}

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Category):
		m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		return m.refilter(), nil
	case key.Matches(msg, m.keys.Sort):
		m.sortIdx = (m.sortIdx + 1) % len(domain.SortKeys)
		return m.refilter(), nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevVariant):
		m.shiftVariant(-1)
	case key.Matches(msg, m.keys.NextVariant):
		m.shiftVariant(1)
	case key.Matches(msg, m.keys.Add):
		m = m.addSelected()
	}
	return m, nil
}

func (m Model) updateCart(msg tea.KeyMsg) Model {
	lines := m.cart.Lines()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case key.Matches(msg, m.keys.Remove):
		if m.cartCursor < len(lines) {
			l := lines[m.cartCursor]
			m.cart.Remove(l.Product.ID, l.Variant)
			m.status = fmt.Sprintf("Removed %s (%s)", l.Product.Name, l.Variant)
		}
	case key.Matches(msg, m.keys.Clear):
		if len(lines) != 0 {
			m.cart.Clear()
			m.status = "Cart cleared"
		}
	case key.Matches(msg, m.keys.Checkout):
		m.status = "Checkout is not available yet"
	}
	m.cartCursor = clamp(m.cartCursor, len(m.cart.Lines()))
	m.badge = m.cart.TotalItems()
	return m
}

func (m Model) criteria() domain.Criteria {
	return domain.Criteria{
		Search:   m.search.Value(),
		Category: m.categories[m.categoryIdx],
		Sort:     domain.SortKeys[m.sortIdx],
	}
}

func (m Model) refilter() Model {
	m.visible = service.FilterProducts(m.products, m.criteria())
	m.cursor = clamp(m.cursor, len(m.visible))
	return m
}

func (m Model) selected() (domain.Product, bool) {
	if m.state != domain.CatalogLoaded || len(m.visible) == 0 {
		return domain.Product{}, false
	}
	return m.visible[m.cursor], true
}

func (m Model) variantOf(p domain.Product) string {
	i := m.variants[p.ID]
	if i < 0 || i >= len(p.Variants) {
		return p.DefaultVariant()
	}
	return p.Variants[i]
}

func (m Model) shiftVariant(delta int) {
	p, ok := m.selected()
	if !ok || !p.InStock || len(p.Variants) == 0 {
		return
	}
	n := len(p.Variants)
	m.variants[p.ID] = ((m.variants[p.ID]+delta)%n + n) % n
}

func (m Model) addSelected() Model {
	p, ok := m.selected()
	if !ok {
		return m
	}
	if !p.InStock {
		m.status = fmt.Sprintf("%s is out of stock", p.Name)
		return m
	}
	variant := m.variantOf(p)
	m.cart.Add(p, variant)
	m.badge = m.cart.TotalItems()
	m.status = fmt.Sprintf("Added %s (%s) to cart", p.Name, variant)
	return m
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Run blocks until the program quits or ctx is done.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	const op = "tui.Run"

	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
