package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/headerscroll/internal/scroll"
)

// rows taken by the tab strip, status bar and footer
const fixedChromeRows = 3

// tabRegion is the tab strip, which starts container drags even though
// it sits over the content.
type tabRegion struct {
	a *App
}

func (r tabRegion) Bounds(dst *scroll.Rect) bool {
	a := r.a
	if a.width <= 0 || a.height <= 0 {
		return false
	}
	top := a.headerRowsVisible() + a.stretchRows()
	ru := float64(a.cfg.UI.RowUnits)
	*dst = scroll.Rect{
		MinX: 0,
		MinY: float64(top) * ru,
		MaxX: float64(a.width * a.colUnits()),
		MaxY: float64(top+1) * ru,
	}
	return true
}

func (a *App) chromeRows() int {
	n := fixedChromeRows
	if a.showTrace {
		n += traceHeight + 3
	}
	return n
}

// resize lays the children out for a w×h terminal.
func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	if w <= 0 || h <= 0 {
		return
	}
	ru := a.cfg.UI.RowUnits
	viewport := max(h-a.chromeRows(), 0)
	for _, p := range a.pages {
		p.setViewport(viewport)
	}
	a.c.Layout([]scroll.Child{
		{Name: "header", Height: a.cfg.UI.HeaderRows * ru},
		{Name: "tabs", Height: ru},
		{Name: "content", Height: viewport * ru},
	})
}

func (a *App) headerRowsHidden() int {
	ru := a.cfg.UI.RowUnits
	return min((a.c.Offset()+ru/2)/ru, a.cfg.UI.HeaderRows)
}

func (a *App) headerRowsVisible() int {
	return a.cfg.UI.HeaderRows - a.headerRowsHidden()
}

// stretchRows is the extra height the header gains while pulled.
func (a *App) stretchRows() int {
	o := a.c.Overscroll()
	if o == nil {
		return 0
	}
	return int(math.Round(a.pull.ratio * float64(o.MaxPull()) / float64(a.cfg.UI.RowUnits)))
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	lines := make([]string, 0, a.height)
	lines = append(lines, a.renderStretch()...)
	lines = append(lines, a.renderHeader()...)
	lines = append(lines, a.renderTabs())
	content := a.height - len(lines) - a.chromeRows() + 1
	lines = append(lines, a.renderContent(content)...)
	if a.showTrace {
		lines = append(lines, a.renderTrace())
	}
	lines = append(lines, a.renderStatus(), a.renderFooter())
	return strings.Join(lines, "\n")
}

func (a *App) renderStretch() []string {
	n := a.stretchRows()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		mark := ""
		if i == n-1 {
			mark = fmt.Sprintf(" pull %3.0f%%", a.pull.ratio*100)
		}
		out = append(out, stretchStyle.Width(a.width).Render(center(mark, a.width)))
	}
	return out
}

func (a *App) headerLines() []string {
	st := a.c.State()
	policy := "off"
	if a.c.CloseUpPolicy() != nil {
		policy = "quartile"
	}
	lines := []string{
		titleStyle.Render("headerscroll") + "  " + a.name,
		fmt.Sprintf("offset %d / %d", st.Offset, st.Bound),
		fmt.Sprintf("owner %s", a.c.Owner()),
		fmt.Sprintf("snapping %s  friction %.3f", policy, a.c.Scroller().Friction()),
		"drag the tabs or the list, or use the wheel",
	}
	for len(lines) < a.cfg.UI.HeaderRows {
		lines = append(lines, "")
	}
	return lines[:a.cfg.UI.HeaderRows]
}

// renderHeader draws the rows of the header that have not scrolled away.
func (a *App) renderHeader() []string {
	all := a.headerLines()
	visible := all[a.headerRowsHidden():]
	out := make([]string, 0, len(visible))
	for i, line := range visible {
		style := headerRowStyle
		if i > 0 {
			style = headerDimStyle
		}
		out = append(out, style.Width(a.width).Render(ansi.Truncate(line, max(a.width-4, 0), "…")))
	}
	return out
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(a.pages)*2)
	for i, p := range a.pages {
		if i > 0 {
			parts = append(parts, tabSepStyle.Render("│"))
		}
		if i == a.pager.Index() {
			parts = append(parts, activeTabStyle.Render(p.title))
		} else {
			parts = append(parts, inactiveTabStyle.Render(p.title))
		}
	}
	line := ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, parts...), a.width, "")
	return lipgloss.NewStyle().Background(colorMantle).Width(a.width).Render(line)
}

func (a *App) renderContent(rows int) []string {
	rows = max(rows, 0)
	out := make([]string, 0, rows)
	p := a.currentPage()
	if p == nil {
		for i := 0; i < rows; i++ {
			out = append(out, "")
		}
		return out
	}
	first := p.firstRow()
	thumbStart, thumbEnd := scrollThumb(first, rows, len(p.rows))
	for i := 0; i < rows; i++ {
		idx := first + i
		text := ""
		if idx < len(p.rows) {
			style := rowStyle
			if idx%2 == 1 {
				style = rowAltStyle
			}
			text = style.Render(ansi.Truncate(p.rows[idx], max(a.width-3, 0), "…"))
		}
		bar := "│"
		if i >= thumbStart && i < thumbEnd {
			bar = "┃"
		}
		out = append(out, padRight(text, a.width-1)+scrollStyle.Render(bar))
	}
	return out
}

// scrollThumb returns the rows of a track of height rows covered by the thumb.
func scrollThumb(first, rows, total int) (int, int) {
	if total <= rows || rows <= 0 {
		return 0, rows
	}
	size := max(rows*rows/total, 1)
	start := first * rows / total
	return start, min(start+size, rows)
}

func (a *App) renderTrace() string {
	chart := a.trace.render(a.clock(), max(a.width-4, 10))
	body := traceTitleStyle.Render("offset") + "\n" + chart
	return traceBoxStyle.Width(max(a.width-2, 0)).Render(body)
}

func (a *App) renderStatus() string {
	flags := []string{}
	if a.c.Flinging() {
		flags = append(flags, statusOnStyle.Render("fling"))
	}
	if a.c.Snapping() {
		flags = append(flags, statusOnStyle.Render("snap"))
	}
	if o := a.c.Overscroll(); o != nil && o.Active() {
		flags = append(flags, statusOnStyle.Render("pull"))
	}
	if a.c.SelfUpdateScroll() {
		flags = append(flags, statusOnStyle.Render("manual"))
	}
	text := fmt.Sprintf("%d/%d", a.c.Offset(), a.c.Bound())
	if p := a.currentPage(); p != nil {
		text += fmt.Sprintf("  %s %d/%d", p.title, p.pos, p.maxPos())
	}
	if len(flags) > 0 {
		text += "  " + strings.Join(flags, " ")
	}
	if a.status != "" {
		text += "  " + a.status
	}
	return statusBarStyle.Width(a.width).Render(ansi.Truncate(text, max(a.width-4, 0), "…"))
}

func (a *App) renderFooter() string {
	bindings := a.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	keyStyle := helpKeyStyle.Background(colorMantle)
	descStyle := helpDescStyle.Background(colorMantle)
	space := lipgloss.NewStyle().Background(colorMantle).Render(" ")
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	sep := lipgloss.NewStyle().Background(colorMantle).Render("  ")
	line := ansi.Truncate(strings.Join(parts, sep), max(a.width-4, 0), "")
	return footerStyle.Width(a.width).Render(line)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}
