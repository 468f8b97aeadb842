package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Browse documents on a chronological timeline",
	Long: `Browse the library on a full-screen chronological timeline.

Documents are grouped by day, newest first. Use vim-style or arrow key
navigation and press Enter to open the selected document.`,
	RunE: runTimeline,
}

func runTimeline(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	listResp, err := listService.Execute(ctx, services.ListRequest{
		SortBy: "modified",
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list documents"))
		return err
	}

	if listResp.Total == 0 {
		fmt.Println(ui.FormatWarning("No documents in the library"))
		fmt.Println(ui.FormatInfo("Run 'snapdoc create' or 'snapdoc import' first"))
		return nil
	}

	view, err := NewTimelineView(listResp.Documents, listResp.TotalSize)
	if err != nil {
		return fmt.Errorf("failed to initialize timeline: %w", err)
	}

	return view.Run()
}

// timelineRow is one renderable line: either a day header or a document.
type timelineRow struct {
	header bool
	label  string
	doc    int // index into docs when header is false
}

// TimelineView provides a terminal-based chronological document browser
type TimelineView struct {
	docs          []domain.Document
	rows          []timelineRow
	docRow        []int // document index -> row index
	totalSize     int64
	screen        tcell.Screen
	width         int
	height        int
	scrollOffset  int
	selectedIndex int // index into docs
	statusText    string
}

// NewTimelineView creates a new timeline viewer. Documents are expected
// newest first; rows are built by splitting them into day groups.
func NewTimelineView(docs []domain.Document, totalSize int64) (*TimelineView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	width, height := screen.Size()

	rows := make([]timelineRow, 0, len(docs)*2)
	docRow := make([]int, len(docs))
	lastDay := ""

	for i, doc := range docs {
		day := doc.ModifiedAt.Format("Monday, 02 Jan 2006")
		if day != lastDay {
			rows = append(rows, timelineRow{header: true, label: day})
			lastDay = day
		}
		docRow[i] = len(rows)
		rows = append(rows, timelineRow{doc: i})
	}

	return &TimelineView{
		docs:          docs,
		rows:          rows,
		docRow:        docRow,
		totalSize:     totalSize,
		screen:        screen,
		width:         width,
		height:        height,
		scrollOffset:  0,
		selectedIndex: 0,
	}, nil
}

// Run starts the interactive viewer
func (v *TimelineView) Run() error {
	defer v.screen.Fini()

	v.screen.Clear()
	v.render()

	for {
		ev := v.screen.PollEvent()

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.width, v.height = ev.Size()
			v.screen.Sync()
			v.render()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}

			v.handleKeyPress(ev)
			v.render()
		}
	}
}

// handleKeyPress processes keyboard input
func (v *TimelineView) handleKeyPress(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyCtrlP:
		v.moveCursor(-1)
	case tcell.KeyDown, tcell.KeyCtrlN:
		v.moveCursor(1)
	case tcell.KeyEnter:
		v.openSelected()
	case tcell.KeyHome:
		v.selectedIndex = 0
		v.scrollOffset = 0
	case tcell.KeyEnd:
		v.selectedIndex = len(v.docs) - 1
		v.adjustScroll()
	}

	// Vim-style navigation
	switch ev.Rune() {
	case 'j':
		v.moveCursor(1)
	case 'k':
		v.moveCursor(-1)
	case 'g':
		v.selectedIndex = 0
		v.scrollOffset = 0
	case 'G':
		v.selectedIndex = len(v.docs) - 1
		v.adjustScroll()
	case 'o':
		v.openSelected()
	}
}

// moveCursor moves the selection cursor
func (v *TimelineView) moveCursor(delta int) {
	if len(v.docs) == 0 {
		return
	}

	v.selectedIndex += delta

	if v.selectedIndex < 0 {
		v.selectedIndex = 0
	}
	if v.selectedIndex >= len(v.docs) {
		v.selectedIndex = len(v.docs) - 1
	}

	v.adjustScroll()
}

// adjustScroll adjusts scroll offset to keep the cursor visible. The
// scroll offset is measured in rows, including day headers.
func (v *TimelineView) adjustScroll() {
	visibleLines := v.height - 7 // Reserve space for header/footer
	if visibleLines < 1 {
		visibleLines = 1
	}

	row := v.docRow[v.selectedIndex]

	// Keep the day header above the first document in view
	if row-1 >= 0 && v.rows[row-1].header && row-1 < v.scrollOffset {
		v.scrollOffset = row - 1
		return
	}

	if row < v.scrollOffset {
		v.scrollOffset = row
	}
	if row >= v.scrollOffset+visibleLines {
		v.scrollOffset = row - visibleLines + 1
	}
}

// openSelected opens the selected document in the PDF viewer
func (v *TimelineView) openSelected() {
	if len(v.docs) == 0 || v.selectedIndex >= len(v.docs) {
		return
	}

	doc := v.docs[v.selectedIndex]
	if err := docOpener.Open(getContext(), doc.Path); err != nil {
		v.statusText = "Failed to open: " + err.Error()
		return
	}
	v.statusText = "Opened: " + doc.DisplayName()
}

// render draws the interface
func (v *TimelineView) render() {
	v.screen.Clear()

	y := 0

	// Header
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorPurple)
	v.drawText(0, y, "┌─ Timeline", titleStyle)
	y++
	statsText := fmt.Sprintf("│  %d documents │ %s total", len(v.docs), humanize.Bytes(uint64(v.totalSize)))
	v.drawText(0, y, statsText, tcell.StyleDefault.Foreground(tcell.ColorGray))
	y++
	v.drawText(0, y, "└─────────────────────────────────────────────────────────────", tcell.StyleDefault.Foreground(tcell.ColorGray))
	y += 2

	// Rows
	visibleLines := v.height - 7
	if visibleLines < 1 {
		visibleLines = 1
	}

	end := v.scrollOffset + visibleLines
	if end > len(v.rows) {
		end = len(v.rows)
	}

	headerStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	for i := v.scrollOffset; i < end; i++ {
		row := v.rows[i]

		if row.header {
			v.drawText(0, y, row.label, headerStyle)
			y++
			continue
		}

		doc := v.docs[row.doc]
		style := tcell.StyleDefault
		prefix := "  "

		if row.doc == v.selectedIndex {
			style = style.Reverse(true)
			prefix = "▶ "
		}

		line := fmt.Sprintf("%s%s  %s  %s",
			prefix,
			doc.ModifiedAt.Format("15:04"),
			doc.DisplayName(),
			humanize.Bytes(uint64(doc.Size)))
		v.drawText(2, y, line, style)
		y++
	}

	// Footer
	footerY := v.height - 2
	v.drawText(0, footerY, strings.Repeat("─", v.width), tcell.StyleDefault.Foreground(tcell.ColorGray))
	footerY++

	if v.statusText != "" {
		v.drawText(0, footerY, v.statusText+" │ ", tcell.StyleDefault.Foreground(tcell.ColorGreen))
		v.drawText(len(v.statusText)+3, footerY, "↑↓/jk: Navigate │ Enter/o: Open │ q/Esc: Quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	} else {
		helpText := "↑↓/jk: Navigate │ Enter/o: Open │ g/G: Top/Bottom │ q/Esc: Quit"
		v.drawText(0, footerY, helpText, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	v.screen.Show()
}

// drawText draws text at the specified position
func (v *TimelineView) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= v.width {
			break
		}
		v.screen.SetContent(col, y, r, nil, style)
		col++
	}
}
