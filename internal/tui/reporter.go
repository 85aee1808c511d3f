// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/stackrun/stackrun/internal/task"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared with the CLI styles.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(ColorPrimary)

	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorHighlight)
	noteStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	keyStyle     = lipgloss.NewStyle().Bold(true)
)

// Reporter renders task output. Writes are best effort; output never fails a
// task.
type Reporter struct {
	w io.Writer
}

var _ task.Reporter = (*Reporter)(nil)

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

// Title renders a banner preceded by a blank line.
func (r *Reporter) Title(text string) {
	r.println("")
	r.println(titleStyle.Render(text))
	r.println("")
}

// Section renders an underlined heading.
func (r *Reporter) Section(text string) {
	r.println(sectionStyle.Render(text))
}

// Success renders a green check line.
func (r *Reporter) Success(text string) {
	r.println(successStyle.Render("✓ " + text))
}

// Warning renders an amber warning line.
func (r *Reporter) Warning(text string) {
	r.println(warningStyle.Render("! " + text))
}

// Info renders a blue bullet line.
func (r *Reporter) Info(text string) {
	r.println(infoStyle.Render("• " + text))
}

// Note renders muted text.
func (r *Reporter) Note(text string) {
	r.println(noteStyle.Render(text))
}

// Listing renders aligned key/value rows.
func (r *Reporter) Listing(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	for _, p := range pairs {
		key := keyStyle.Render(p[0]) + strings.Repeat(" ", width-lipgloss.Width(p[0]))
		r.println("  " + key + "  " + p[1])
	}
}
