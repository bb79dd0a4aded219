// Package tui implements the terminal presentation layer over the
// screen controllers. It holds no domain logic: controller states come
// in over their update subscriptions, user intents go out as controller
// calls.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/flightdeck/internal/controller"
	"github.com/asteroid-belt/flightdeck/internal/models"
	"github.com/asteroid-belt/flightdeck/internal/repository"
)

// Messages carrying controller emissions into the update loop.
type (
	airportsStateMsg  struct{ state controller.AirportsState }
	favoritesStateMsg struct{ state controller.FavoritesState }
	routesStateMsg    struct{ state controller.RoutesState }
	savedQueryMsg     struct{ query string }
)

// App is the bubbletea model hosting the four screen controllers.
type App struct {
	ctx context.Context

	home      *controller.Home
	airports  *controller.Airports
	favorites *controller.Favorites
	routes    *controller.Routes

	airportsUpdates  <-chan controller.AirportsState
	favoritesUpdates <-chan controller.FavoritesState
	routesUpdates    <-chan controller.RoutesState
	queryUpdates     <-chan string

	searchInput textinput.Model

	screen      controller.Screen
	cursor      int
	current     models.Airport // departure airport shown on the routes screen
	haveCurrent bool

	airportsState  controller.AirportsState
	favoritesState controller.FavoritesState
	routesState    controller.RoutesState

	status string
	width  int
	height int
}

// New creates the TUI over a repository. The controllers live for the
// duration of ctx; cancelling it tears them down.
func New(ctx context.Context, repo *repository.Repository) *App {
	home := controller.NewHome(ctx, repo)
	airports := controller.NewAirports(ctx, repo)
	favorites := controller.NewFavorites(ctx, repo)
	routes := controller.NewRoutes(ctx, repo)

	input := textinput.New()
	input.Placeholder = "Search airports by name or IATA code..."
	input.CharLimit = 100
	input.Width = 50
	input.Focus()

	return &App{
		ctx:              ctx,
		home:             home,
		airports:         airports,
		favorites:        favorites,
		routes:           routes,
		airportsUpdates:  airports.Updates(ctx),
		favoritesUpdates: favorites.Updates(ctx),
		routesUpdates:    routes.Updates(ctx),
		queryUpdates:     home.Updates(ctx),
		searchInput:      input,
		screen:           controller.ScreenFavorites,
		airportsState:    airports.State(),
		favoritesState:   favorites.State(),
		routesState:      routes.State(),
	}
}

// Init starts the blink cursor and the controller subscriptions.
func (m *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitAirports(m.airportsUpdates),
		waitFavorites(m.favoritesUpdates),
		waitRoutes(m.routesUpdates),
		waitQuery(m.queryUpdates),
	)
}

func waitAirports(ch <-chan controller.AirportsState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return airportsStateMsg{state}
	}
}

func waitFavorites(ch <-chan controller.FavoritesState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return favoritesStateMsg{state}
	}
}

func waitRoutes(ch <-chan controller.RoutesState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return routesStateMsg{state}
	}
}

func waitQuery(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		query, ok := <-ch
		if !ok {
			return nil
		}
		return savedQueryMsg{query}
	}
}

// Update handles messages.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case airportsStateMsg:
		m.airportsState = msg.state
		m.clampCursor()
		return m, waitAirports(m.airportsUpdates)

	case favoritesStateMsg:
		m.favoritesState = msg.state
		m.clampCursor()
		return m, waitFavorites(m.favoritesUpdates)

	case routesStateMsg:
		m.routesState = msg.state
		m.clampCursor()
		return m, waitRoutes(m.routesUpdates)

	case savedQueryMsg:
		// Adopt the persisted query on startup; later emissions echo
		// our own edits and are ignored to keep the cursor stable.
		if m.searchInput.Value() != msg.query {
			m.searchInput.SetValue(msg.query)
			m.routeForQuery(msg.query)
		}
		return m, waitQuery(m.queryUpdates)

	case tea.KeyMsg:
		if m.screen == controller.ScreenRoutes {
			return m.updateRoutesScreen(msg)
		}
		return m.updateSearchScreens(msg)
	}

	return m, nil
}

// updateSearchScreens handles keys while the search bar drives the
// favorites and airport-search screens.
func (m *App) updateSearchScreens(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.selectCurrent()
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		m.status = ""
		m.home.SetQuery(value)
		m.routeForQuery(value)
	}
	return m, cmd
}

// routeForQuery re-evaluates the navigation decision for a query: a
// non-blank query shows search results, a blank one the favorites.
func (m *App) routeForQuery(query string) {
	m.cursor = 0
	m.screen = controller.DestinationFor(query)
	if m.screen == controller.ScreenAirports {
		m.airports.Search(query)
	}
}

// selectCurrent handles enter on the list under the search bar: an
// airport opens its routes, a favorite is toggled off.
func (m *App) selectCurrent() (tea.Model, tea.Cmd) {
	switch m.screen {
	case controller.ScreenAirports:
		if state, ok := m.airportsState.(controller.AirportsSuccess); ok {
			if m.cursor < len(state.Airports) {
				m.current = state.Airports[m.cursor]
				m.haveCurrent = true
				m.screen = controller.ScreenRoutes
				m.cursor = 0
				m.searchInput.Blur()
			}
		}
	case controller.ScreenFavorites:
		if state, ok := m.favoritesState.(controller.FavoritesSuccess); ok {
			if m.cursor < len(state.Favorites) {
				m.favorites.ToggleFavorite(state.Favorites[m.cursor])
			}
		}
	}
	return m, nil
}

// updateRoutesScreen handles keys on the routes screen, where the
// search bar is blurred.
func (m *App) updateRoutesScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		m.screen = controller.DestinationFor(m.searchInput.Value())
		m.cursor = 0
		m.haveCurrent = false
		m.searchInput.Focus()
		return m, textinput.Blink

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}

	case "f":
		if dest, ok := m.selectedDestination(); ok {
			m.routes.ToggleFavorite(models.Favorite{
				DepartureCode:   m.current.IATACode,
				DestinationCode: dest.IATACode,
			})
		}

	case "y":
		if dest, ok := m.selectedDestination(); ok {
			if err := clipboard.WriteAll(dest.IATACode); err == nil {
				m.status = fmt.Sprintf("Copied %s to clipboard", dest.IATACode)
			}
		}
	}
	return m, nil
}

func (m *App) selectedDestination() (models.Airport, bool) {
	state, ok := m.routesState.(controller.RoutesSuccess)
	if !ok || !m.haveCurrent {
		return models.Airport{}, false
	}
	destinations := state.Destinations(m.current.ID)
	if m.cursor >= len(destinations) {
		return models.Airport{}, false
	}
	return destinations[m.cursor], true
}

// listLen returns the length of the list shown on the active screen.
func (m *App) listLen() int {
	switch m.screen {
	case controller.ScreenAirports:
		if state, ok := m.airportsState.(controller.AirportsSuccess); ok {
			return len(state.Airports)
		}
	case controller.ScreenFavorites:
		if state, ok := m.favoritesState.(controller.FavoritesSuccess); ok {
			return len(state.Favorites)
		}
	case controller.ScreenRoutes:
		if state, ok := m.routesState.(controller.RoutesSuccess); ok && m.haveCurrent {
			return len(state.Destinations(m.current.ID))
		}
	}
	return 0
}

func (m *App) clampCursor() {
	if n := m.listLen(); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// View renders the active screen.
func (m *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Flightdeck"))
	b.WriteString("\n")
	b.WriteString(searchBoxStyle.Render(m.searchInput.View()))
	b.WriteString("\n\n")

	switch m.screen {
	case controller.ScreenAirports:
		b.WriteString(m.viewAirports())
	case controller.ScreenRoutes:
		b.WriteString(m.viewRoutes())
	default:
		b.WriteString(m.viewFavorites())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))

	return b.String()
}

func (m *App) viewAirports() string {
	switch state := m.airportsState.(type) {
	case controller.AirportsSuccess:
		var b strings.Builder
		b.WriteString(headingStyle.Render("Airports"))
		b.WriteString("\n")
		for i, a := range state.Airports {
			line := fmt.Sprintf("%-4s %s", a.IATACode, a.Name)
			b.WriteString(m.listLine(i, line))
		}
		return b.String()
	case controller.AirportsError:
		return errorStyle.Render(state.Message)
	default:
		return mutedStyle.Render("Loading airports...")
	}
}

func (m *App) viewFavorites() string {
	switch state := m.favoritesState.(type) {
	case controller.FavoritesSuccess:
		var b strings.Builder
		b.WriteString(headingStyle.Render("Favorite routes"))
		b.WriteString("\n")
		index := state.Index()
		for i, f := range state.Favorites {
			line := fmt.Sprintf("%s → %s  %s → %s",
				f.DepartureCode, f.DestinationCode,
				displayName(index, f.DepartureCode), displayName(index, f.DestinationCode))
			b.WriteString(m.listLine(i, line))
		}
		return b.String()
	case controller.FavoritesIdle:
		return mutedStyle.Render("No favorite routes yet. Search for an airport to get started.")
	case controller.FavoritesError:
		return errorStyle.Render(state.Message)
	default:
		return mutedStyle.Render("Loading favorites...")
	}
}

func (m *App) viewRoutes() string {
	state, ok := m.routesState.(controller.RoutesSuccess)
	if !ok {
		if errState, isErr := m.routesState.(controller.RoutesError); isErr {
			return errorStyle.Render(errState.Message)
		}
		return mutedStyle.Render("Loading routes...")
	}
	if !m.haveCurrent {
		return mutedStyle.Render("Select an airport to see its routes.")
	}

	// Re-resolve the departure airport from the freshest catalog.
	current, found := state.Current(m.current.ID)
	if !found {
		current = m.current
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Routes from %s (%s)", current.Name, current.IATACode)))
	b.WriteString("\n")
	for i, dest := range state.Destinations(current.ID) {
		marker := " "
		if state.IsFavoriteRoute(current, dest) {
			marker = favoriteStyle.Render("★")
		}
		line := fmt.Sprintf("%s %s → %s  %s", marker, current.IATACode, dest.IATACode, dest.Name)
		b.WriteString(m.listLine(i, line))
	}
	return b.String()
}

func (m *App) listLine(i int, line string) string {
	prefix := "  "
	style := lipgloss.NewStyle()
	if i == m.cursor {
		prefix = "> "
		style = selectedStyle
	}
	return style.Render(prefix+line) + "\n"
}

func (m *App) helpLine() string {
	if m.screen == controller.ScreenRoutes {
		return "↑/↓ move · f toggle favorite · y copy code · esc back · q quit"
	}
	if m.screen == controller.ScreenAirports {
		return "type to search · ↑/↓ move · enter view routes · ctrl+c quit"
	}
	return "type to search · ↑/↓ move · enter remove favorite · ctrl+c quit"
}

func displayName(index map[string]models.Airport, code string) string {
	if a, ok := index[code]; ok {
		return a.Name
	}
	return code
}
