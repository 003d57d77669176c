package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/scx/internal/formatter"
	"github.com/desertthunder/scx/internal/models"
	"github.com/desertthunder/scx/internal/services"
	"github.com/desertthunder/scx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TrackListView ViewState = iota
	ConfirmView
	DownloadView
	ResultView
)

// Source is the part of a track source the picker drives.
type Source interface {
	services.Listable
	services.Downloadable
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	source    Source
	dir       string
	logger    *log.Logger
	width     int
	height    int
	page      *models.ListingPage
	trackList list.Model
	selected  *models.TrackSummary
	dest      string
	status    string
	loading   bool
	result    *models.DownloadResult
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a picker that saves downloads into dir.
func NewModel(ctx context.Context, source Source, dir string, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Model{
		ctx:       ctx,
		view:      TrackListView,
		source:    source,
		dir:       dir,
		logger:    logger,
		trackList: newTrackList(&models.ListingPage{Page: 1}),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

func newTrackList(page *models.ListingPage) list.Model {
	l := list.New(trackItems(page), trackDelegate(), 0, 0)
	l.Title = fmt.Sprintf("SoundCloud • page %d of %d", page.Page, max(page.TotalPages, 1))
	l.Styles.Title = styles.header
	l.SetShowHelp(false)
	return l
}

// Init initializes the TUI by fetching the first page.
func (m *Model) Init() tea.Cmd {
	return m.fetchPage(1)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.trackList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case DownloadView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPageFetched:
		data := msg.data.(pageFetched)
		m.loading = false
		if data.err != nil {
			m.err = data.err
			if errors.Is(data.err, shared.ErrNotAuthenticated) {
				return m, tea.Quit
			}
			return m, nil
		}
		m.err = nil
		m.page = data.page
		m.trackList = newTrackList(data.page)
		if m.width > 0 {
			m.trackList.SetSize(m.width-4, m.height-8)
		}
		m.status = ""
		return m, nil

	case MsgLinkResolved:
		data := msg.data.(linkResolved)
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Link failed: %v", data.err))
		} else {
			m.status = styles.link.Render(data.link)
		}
		return m, nil

	case MsgDownloadComplete:
		data := msg.data.(downloadComplete)
		m.result = data.result
		m.err = data.err
		m.view = ResultView
		if data.err != nil {
			m.logger.Error("download failed", "track", m.selected.Source, "error", data.err)
		} else {
			m.logger.Info("downloaded", "track", m.selected.Source, "path", data.result.Path)
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case TrackListView:
		return m.renderTrackList()
	case ConfirmView:
		return m.renderConfirm()
	case DownloadView:
		return m.renderDownload()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trackList.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		if m.page != nil && m.page.HasNext() && !m.loading {
			return m, m.fetchPage(m.page.Page + 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.prev):
		if m.page != nil && m.page.HasPrev() && !m.loading {
			return m, m.fetchPage(m.page.Page - 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.link):
		if track, ok := m.selectedTrack(); ok {
			m.status = "Resolving link..."
			return m, m.resolveLink(track.Source)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if track, ok := m.selectedTrack(); ok {
			m.selected = &track
			m.dest = formatter.DestinationPath(m.dir, track.Title)
			m.view = ConfirmView
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.view = DownloadView
		return m, m.download(m.selected.Source, m.dest)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = TrackListView
		m.selected = nil
		return m, nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart), key.Matches(msg, m.keys.back):
		m.view = TrackListView
		m.selected = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) selectedTrack() (models.TrackSummary, bool) {
	item, ok := m.trackList.SelectedItem().(trackItem)
	if !ok {
		return models.TrackSummary{}, false
	}
	return item.track, true
}

func (m *Model) fetchPage(page int) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		listing, err := m.source.ListTracks(m.ctx, page)
		return pageFetchedMsg(listing, err)
	}
}

func (m *Model) resolveLink(trackID int64) tea.Cmd {
	return func() tea.Msg {
		link, err := m.source.ResolveLink(m.ctx, trackID)
		return linkResolvedMsg(link, err)
	}
}

func (m *Model) download(trackID int64, dest string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.source.DownloadTrack(m.ctx, trackID, dest)
		return downloadCompleteMsg(result, err)
	}
}

func (m *Model) renderTrackList() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}
	if m.page == nil {
		return styles.muted.Render("Loading tracks...")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.link, m.keys.next, m.keys.prev, m.keys.quit}
	view := fmt.Sprintf("%s\n\n%s", m.trackList.View(), m.help.ShortHelpView(helpKeys))
	if m.status != "" {
		view += "\n" + m.status
	}
	return view
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Download '%s'?", m.selected.Title))
	info := fmt.Sprintf("\nTrack: #%d\nSave to: %s\n", m.selected.Source, m.dest)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n%s", title, info, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDownload() string {
	title := styles.title.Render("Downloading")
	return fmt.Sprintf("%s\n\n%s → %s", title, m.selected.Title, m.dest)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	if m.err != nil {
		msg := fmt.Sprintf("Download failed: %v", m.err)
		if errors.Is(m.err, shared.ErrQuotaExceeded) {
			return fmt.Sprintf("%s\n\n%s", styles.quota.Render("Download count for this track has been exceeded"), helpView)
		}
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(msg), helpView)
	}

	if m.result == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("No result available"), helpView)
	}

	title := styles.ok.Render("✓ Download Complete!")
	info := fmt.Sprintf("\nSaved: %s\nSource: %s", m.result.Path, m.result.SourceURL)
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
