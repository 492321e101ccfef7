package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/springdock/internal/magnify"
	"github.com/olivier-w/springdock/internal/util"
)

// tooltips below this opacity are not drawn at all
const minTooltipOpacity = 0.1

var (
	tooltipBg    = colorful.Color{R: 0.11, G: 0.11, B: 0.11}
	tooltipFg    = colorful.Color{R: 1, G: 1, B: 1}
	fallbackIcon = colorful.Color{R: 0.61, G: 0.64, B: 0.69}
)

// renderDock draws the canvas of every slot side by side inside the dock
// box.
func renderDock(outs []magnify.Output, l layout) string {
	slots := make([][]string, len(outs))
	for i, out := range outs {
		slots[i] = renderSlot(out, l)
	}
	lines := make([]string, l.rows)
	for r := range lines {
		var b strings.Builder
		for _, s := range slots {
			b.WriteString(s[r])
		}
		lines[r] = b.String()
	}
	if len(outs) == 0 {
		for r := range lines {
			lines[r] = " "
		}
	}
	return dockStyle.Render(strings.Join(lines, "\n"))
}

// renderSlot returns exactly l.rows lines, each l.slotW cells wide. Scale
// grows the icon box, lift raises it, and the tooltip floats two rows above
// it, pushed down by its offset.
func renderSlot(out magnify.Output, l layout) []string {
	blank := strings.Repeat(" ", l.slotW)
	lines := make([]string, l.rows)
	for r := range lines {
		lines[r] = blank
	}

	w := clampInt(roundInt(float64(l.iconCols)*out.Scale), 1, l.slotW)
	h := clampInt(roundInt(baseIconRows*out.Scale), 1, l.iconRows)
	lift := clampInt(l.rowsFor(-out.LiftY), 0, l.liftRows)
	top := l.rows - lift - h

	icon := iconStyle.
		Background(lipgloss.Color(iconColor(out.Item.Color))).
		Width(w).
		Height(h).
		Render(out.Item.Glyph)
	for i, line := range strings.Split(icon, "\n") {
		if r := top + i; r >= 0 && r < l.rows {
			lines[r] = lipgloss.PlaceHorizontal(l.slotW, lipgloss.Center, line)
		}
	}

	if out.TooltipOpacity >= minTooltipOpacity {
		r := top - tooltipRows + l.rowsFor(out.TooltipOffsetY)
		if r >= 0 && r < top {
			label := truncate(out.Item.Name, l.slotW-2)
			tip := tooltipStyle(out.TooltipOpacity).Render(" " + label + " ")
			lines[r] = lipgloss.PlaceHorizontal(l.slotW, lipgloss.Center, tip)
		}
	}
	return lines
}

// tooltipStyle fades the label text into its background as opacity drops.
func tooltipStyle(opacity float64) lipgloss.Style {
	fg := tooltipBg.BlendRgb(tooltipFg, clamp01(opacity))
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(tooltipBg.Hex()))
}

func iconColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallbackIcon.Hex()
	}
	return c.Hex()
}

func renderStats(outs []magnify.Output) string {
	var b strings.Builder
	for i, out := range outs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-9s scale %s  lift %s  tip %s",
			truncate(out.Item.Name, 9),
			util.FormatFixed(out.Scale, 3),
			util.FormatSigned(out.LiftY, 1),
			util.FormatFixed(out.TooltipOpacity, 2))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
