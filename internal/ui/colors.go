package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// SoundCloud brand orange and the neutral tones used around it.
const (
	orange = lipgloss.Color("#FF5500")
	green  = lipgloss.Color("#04B575")
	red    = lipgloss.Color("#FF3333")
	amber  = lipgloss.Color("#FFA500")
	grey   = lipgloss.Color("#626262")
)

var styles = newTheme()

// theme holds the styles of every view.
type theme struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	quota  lipgloss.Style
	link   lipgloss.Style
	muted  lipgloss.Style
	header lipgloss.Style
}

func newTheme() theme {
	base := lipgloss.NewStyle()
	return theme{
		title:  base.Foreground(orange).Bold(true).MarginBottom(1),
		ok:     base.Foreground(green).Bold(true),
		err:    base.Foreground(red).Bold(true),
		quota:  base.Foreground(amber),
		link:   base.Foreground(orange),
		muted:  base.Foreground(grey).Italic(true),
		header: base.Foreground(lipgloss.Color("#FFFFFF")).Background(orange).Padding(0, 1),
	}
}

// trackDelegate renders list rows with the selection in brand orange.
func trackDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(orange).BorderLeftForeground(orange)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(amber).BorderLeftForeground(orange)
	return d
}
