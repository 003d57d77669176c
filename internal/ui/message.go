package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/scx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPageFetched MsgKind = iota
	MsgLinkResolved
	MsgDownloadComplete
)

type pageFetched struct {
	page *models.ListingPage
	err  error
}

type linkResolved struct {
	link string
	err  error
}

type downloadComplete struct {
	result *models.DownloadResult
	err    error
}

// pageFetchedMsg is the constructor for [MsgPageFetched]
func pageFetchedMsg(page *models.ListingPage, err error) Msg {
	return Msg{kind: MsgPageFetched, data: pageFetched{page, err}}
}

// linkResolvedMsg is the constructor for [MsgLinkResolved]
func linkResolvedMsg(link string, err error) Msg {
	return Msg{kind: MsgLinkResolved, data: linkResolved{link, err}}
}

// downloadCompleteMsg is the constructor for [MsgDownloadComplete]
func downloadCompleteMsg(result *models.DownloadResult, err error) Msg {
	return Msg{kind: MsgDownloadComplete, data: downloadComplete{result, err}}
}
