package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the interactive library browser",
	Long: `Launch a full-screen interactive browser for the document library.

The browser provides:
- List view with all documents sorted by modification time
- Real-time search and filtering
- Quick actions: open, reveal, delete

Keyboard Shortcuts:
  Navigation:
    ↑/k         Move up
    ↓/j         Move down
    g           Jump to top
    G           Jump to bottom

  Actions:
    Enter/o     Open document (PDF viewer)
    r           Reveal in file manager
    d           Delete document

  Views:
    /           Search mode
    Esc         Clear search / Exit mode
    ?           Show help

  General:
    q           Quit browser
    Ctrl+C      Force quit`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	listResp, err := listService.Execute(ctx, services.ListRequest{
		SortBy: "modified",
	})
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	m := newBrowseModel(ctx, listResp.Documents)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}

	return nil
}

// Browser view modes
type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeHelp
	modeConfirmDelete
)

// Browser model
type browseModel struct {
	ctx           context.Context
	docs          []domain.Document // All documents
	filteredDocs  []domain.Document // Filtered/searched documents
	cursor        int               // Selected item index
	offset        int               // Scroll offset for viewport
	mode          viewMode
	searchInput   textinput.Model
	help          help.Model
	keys          keyMap
	width         int
	height        int
	ready         bool
	message       string // Status message
	messageStyle  lipgloss.Style
	messageExpiry time.Time
	deleteTarget  *domain.Document // Document pending deletion
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Open    key.Binding
	Reveal  key.Binding
	Delete  key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Reveal, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.Reveal, k.Delete},
		{k.Search, k.Help, k.Escape, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("enter/o", "open PDF"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reveal"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

func newBrowseModel(ctx context.Context, docs []domain.Document) browseModel {
	ti := textinput.New()
	ti.Placeholder = "Search documents..."
	ti.CharLimit = 100
	ti.Width = 50

	return browseModel{
		ctx:          ctx,
		docs:         docs,
		filteredDocs: docs,
		cursor:       0,
		offset:       0,
		mode:         modeList,
		searchInput:  ti,
		help:         help.New(),
		keys:         keys,
		ready:        false,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific key bindings
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			return m.updateHelp(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}

	case statusMsg:
		m.message = msg.message
		m.messageStyle = msg.style
		m.messageExpiry = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearMessageMsg{}
		})

	case clearMessageMsg:
		if time.Now().After(m.messageExpiry) {
			m.message = ""
		}
		return m, nil

	case reloadDocsMsg:
		// Reload documents from disk
		listResp, err := listService.Execute(m.ctx, services.ListRequest{
			SortBy: "modified",
		})
		if err == nil {
			m.docs = listResp.Documents
			m.applySearch()
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filteredDocs)-1 {
			m.cursor++
			m.adjustViewport()
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.filteredDocs) - 1
		m.adjustViewport()

	case key.Matches(msg, m.keys.Open):
		if len(m.filteredDocs) > 0 {
			return m, m.openDocument(m.filteredDocs[m.cursor])
		}

	case key.Matches(msg, m.keys.Reveal):
		if len(m.filteredDocs) > 0 {
			return m, m.revealDocument(m.filteredDocs[m.cursor])
		}

	case key.Matches(msg, m.keys.Delete):
		if len(m.filteredDocs) > 0 {
			m.deleteTarget = &m.filteredDocs[m.cursor]
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}

	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.filteredDocs = m.docs
		m.cursor = 0
		m.offset = 0
		return m, nil

	// Enter key to open document from search
	case msg.Type == tea.KeyEnter:
		if len(m.filteredDocs) > 0 {
			m.mode = modeList
			m.searchInput.Blur()
			return m, m.openDocument(m.filteredDocs[m.cursor])
		}

	// Only use arrow keys for navigation in search mode, not j/k
	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
		}

	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.filteredDocs)-1 {
			m.cursor++
			m.adjustViewport()
		}

	default:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applySearch()
		return m, cmd
	}

	return m, nil
}

func (m browseModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	}
	return m, nil
}

func (m browseModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		doc := m.deleteTarget
		m.deleteTarget = nil
		m.mode = modeList
		return m, m.deleteDocumentConfirmed(doc)

	case key.Matches(msg, m.keys.Cancel):
		m.deleteTarget = nil
		m.mode = modeList
	}
	return m, nil
}

func (m browseModel) View() string {
	if !m.ready {
		return "\n  Loading library..."
	}

	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewList()
	}
}

func (m browseModel) viewList() string {
	// Split screen: list on left, details on right
	listWidth := int(float64(m.width) * 0.55)
	detailWidth := m.width - listWidth - 2

	var s strings.Builder

	// Header spans full width
	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	// Search bar spans full width
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n\n")

	if detailWidth < 36 {
		// Screen too narrow for the detail pane
		s.WriteString(m.renderDocList(m.width))
	} else {
		listContent := m.renderDocList(listWidth)
		detailContent := m.renderDetail(detailWidth)

		listLines := strings.Split(listContent, "\n")
		detailLines := strings.Split(detailContent, "\n")

		maxLines := len(listLines)
		if len(detailLines) > maxLines {
			maxLines = len(detailLines)
		}

		for i := 0; i < maxLines; i++ {
			var listLine, detailLine string

			if i < len(listLines) {
				listLine = listLines[i]
			}
			if i < len(detailLines) {
				detailLine = detailLines[i]
			}

			s.WriteString(padRight(listLine, listWidth))
			s.WriteString("  ")
			s.WriteString(detailLine)
			s.WriteString("\n")
		}
	}

	// Footer
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m browseModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ui.ColorSuccess).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault)

	s.WriteString(titleStyle.Render("Snapdoc Browser - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Navigation",
			keys: []struct{ key, desc string }{
				{"↑ / k", "Move cursor up"},
				{"↓ / j", "Move cursor down"},
				{"g", "Jump to top"},
				{"G", "Jump to bottom"},
			},
		},
		{
			title: "Actions",
			keys: []struct{ key, desc string }{
				{"Enter / o", "Open document in the PDF viewer"},
				{"r", "Reveal document in the file manager"},
				{"d", "Delete document (with confirmation)"},
			},
		},
		{
			title: "Views & Search",
			keys: []struct{ key, desc string }{
				{"/", "Start search (type to filter, arrow keys to navigate)"},
				{"Esc", "Exit search / Cancel"},
				{"?", "Show this help"},
			},
		},
		{
			title: "General",
			keys: []struct{ key, desc string }{
				{"q", "Quit browser"},
				{"Ctrl+C", "Force quit"},
			},
		},
	}

	for _, section := range sections {
		s.WriteString(sectionStyle.Render(section.title))
		s.WriteString("\n")
		for _, binding := range section.keys {
			s.WriteString("  ")
			s.WriteString(keyStyle.Render(binding.key))
			s.WriteString(descStyle.Render(binding.desc))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to the browser"))
	s.WriteString("\n")

	return s.String()
}

func (m browseModel) viewConfirmDelete() string {
	if m.deleteTarget == nil {
		return ""
	}

	var s strings.Builder

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(60).
		Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorWarning).
		Bold(true)

	docStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true)

	promptStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault).
		MarginTop(1)

	content := fmt.Sprintf("%s\n\n%s\n%s\n\n%s",
		titleStyle.Render("Delete Document?"),
		docStyle.Render(m.deleteTarget.DisplayName()),
		ui.StyleMuted.Render(humanize.Bytes(uint64(m.deleteTarget.Size))),
		promptStyle.Render("Press 'y' to confirm, 'n' or ESC to cancel"),
	)

	box := boxStyle.Render(content)

	// Center the box vertically
	verticalPadding := (m.height - lipgloss.Height(box)) / 2
	if verticalPadding < 0 {
		verticalPadding = 0
	}

	for i := 0; i < verticalPadding; i++ {
		s.WriteString("\n")
	}

	s.WriteString(lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, box))

	return s.String()
}

func (m browseModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	libraryPath := appLibrary.DocumentsPath
	if home, err := os.UserHomeDir(); err == nil {
		libraryPath = strings.Replace(libraryPath, home, "~", 1)
	}

	title := titleStyle.Render("Snapdoc Library")
	stats := statsStyle.Render(fmt.Sprintf("%d documents  %s", len(m.filteredDocs), libraryPath))

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	spacer := m.width - titleWidth - statsWidth

	if spacer < 0 {
		spacer = 0
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacer),
		stats,
	)
}

func (m browseModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == modeSearch {
		borderColor = ui.ColorPrimary
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 4)

	content := m.searchInput.View()
	if m.mode != modeSearch && m.searchInput.Value() == "" {
		content = ui.StyleMuted.Render("Press / to search...")
	}

	return searchStyle.Render(content)
}

func (m browseModel) renderDocList(width int) string {
	var s strings.Builder

	if len(m.filteredDocs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(2, 2).
			Width(width)

		if m.searchInput.Value() != "" {
			s.WriteString(emptyStyle.Render("No documents match your search."))
		} else {
			s.WriteString(emptyStyle.Render("The library is empty. Run 'snapdoc create' or 'snapdoc import' first."))
		}
		return s.String()
	}

	listHeight := m.height - 10 // Reserve space for header, search, footer
	if listHeight < 3 {
		listHeight = 3
	}

	start := m.offset
	end := m.offset + listHeight
	if end > len(m.filteredDocs) {
		end = len(m.filteredDocs)
	}

	for i := start; i < end; i++ {
		s.WriteString(m.renderDocItem(m.filteredDocs[i], i == m.cursor, width))
	}

	return s.String()
}

func (m browseModel) renderDocItem(doc domain.Document, selected bool, width int) string {
	var cursor string
	nameStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)

	if selected {
		cursor = ui.StylePrimary.Render("▶ ")
		nameStyle = ui.StylePrimary.Copy().Bold(true)
	} else {
		cursor = "  "
	}

	// Truncate name to fit width, reserving space for cursor and date
	maxNameLen := width - 15
	if maxNameLen < 10 {
		maxNameLen = 10
	}

	name := doc.DisplayName()
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	line := fmt.Sprintf("%s%-*s %s",
		cursor,
		maxNameLen,
		nameStyle.Render(name),
		ui.StyleMuted.Render(humanize.Time(doc.ModifiedAt)),
	)

	return padRight(line, width) + "\n"
}

func (m browseModel) renderDetail(width int) string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(width - 2).
		Height(m.height - 12)

	if len(m.filteredDocs) == 0 {
		return borderStyle.Render(
			lipgloss.NewStyle().
				Foreground(ui.ColorMuted).
				Italic(true).
				Padding(1).
				Render("No document selected"),
		)
	}

	doc := m.filteredDocs[m.cursor]

	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Width(width - 4)

	labelStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Width(10)

	path := doc.Path
	if home, err := os.UserHomeDir(); err == nil {
		path = strings.Replace(path, home, "~", 1)
	}

	s.WriteString(titleStyle.Render(doc.DisplayName()))
	s.WriteString("\n\n")
	s.WriteString(labelStyle.Render("Name"))
	s.WriteString(doc.Name)
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Size"))
	s.WriteString(fmt.Sprintf("%s (%d bytes)", humanize.Bytes(uint64(doc.Size)), doc.Size))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Modified"))
	s.WriteString(fmt.Sprintf("%s (%s)", doc.DisplayDate(appConfig.DisplayDateFormat), humanize.Time(doc.ModifiedAt)))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Location"))
	s.WriteString(path)
	s.WriteString("\n\n")
	s.WriteString(ui.StyleMuted.Render("enter/o open   r reveal   d delete"))

	return borderStyle.Render(s.String())
}

func (m browseModel) renderFooter() string {
	var statusLine string
	if m.message != "" && time.Now().Before(m.messageExpiry) {
		statusLine = m.messageStyle.Render(m.message)
	} else {
		statusLine = ui.StyleMuted.Render("Ready")
	}

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		statusLine,
		m.help.View(m.keys),
	)

	return footerStyle.Render(content)
}

func padRight(s string, width int) string {
	// lipgloss.Width ignores ANSI escape sequences
	realLen := lipgloss.Width(s)
	if realLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-realLen)
}

func (m *browseModel) adjustViewport() {
	listHeight := m.height - 10
	if listHeight < 3 {
		listHeight = 3
	}

	// Scroll down
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}

	// Scroll up
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m *browseModel) applySearch() {
	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" {
		m.filteredDocs = m.docs
	} else {
		resp, err := listService.Search(m.ctx, services.SearchRequest{Query: query})
		if err == nil {
			m.filteredDocs = resp.Documents
		}
	}

	// Reset cursor
	if m.cursor >= len(m.filteredDocs) {
		m.cursor = len(m.filteredDocs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewport()
}

// Commands

type statusMsg struct {
	message string
	style   lipgloss.Style
}

type clearMessageMsg struct{}

type reloadDocsMsg struct{}

func (m browseModel) openDocument(doc domain.Document) tea.Cmd {
	return func() tea.Msg {
		if err := docOpener.Open(m.ctx, doc.Path); err != nil {
			return statusMsg{
				message: fmt.Sprintf("Failed to open: %v", err),
				style:   ui.StyleError,
			}
		}

		return statusMsg{
			message: fmt.Sprintf("Opened: %s", doc.DisplayName()),
			style:   ui.StyleSuccess,
		}
	}
}

func (m browseModel) revealDocument(doc domain.Document) tea.Cmd {
	return func() tea.Msg {
		if err := docOpener.Reveal(m.ctx, doc.Path); err != nil {
			return statusMsg{
				message: fmt.Sprintf("Failed to reveal: %v", err),
				style:   ui.StyleError,
			}
		}

		return statusMsg{
			message: fmt.Sprintf("Revealed: %s", doc.DisplayName()),
			style:   ui.StyleSuccess,
		}
	}
}

func (m browseModel) deleteDocumentConfirmed(doc *domain.Document) tea.Cmd {
	return func() tea.Msg {
		if doc == nil {
			return nil
		}

		removed, err := documentStore.Delete(m.ctx, doc.Name)
		if err != nil {
			return statusMsg{
				message: fmt.Sprintf("Failed to delete: %v", err),
				style:   ui.StyleError,
			}
		}

		message := fmt.Sprintf("Deleted: %s", doc.DisplayName())
		if !removed {
			message = fmt.Sprintf("Already removed: %s", doc.DisplayName())
		}

		return tea.Sequence(
			func() tea.Msg {
				return statusMsg{
					message: message,
					style:   ui.StyleSuccess,
				}
			},
			func() tea.Msg {
				return reloadDocsMsg{}
			},
		)()
	}
}
