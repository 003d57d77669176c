package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/scx/internal/models"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.TrackSummary] to implement [list.Item].
type trackItem struct {
	track models.TrackSummary
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	if i.track.Date == "" {
		return fmt.Sprintf("#%d", i.track.Source)
	}
	if ts, err := i.track.CreatedTime(); err == nil {
		return fmt.Sprintf("#%d • %s", i.track.Source, ts.Format("2 Jan 2006"))
	}
	return fmt.Sprintf("#%d • %s", i.track.Source, i.track.Date)
}

func trackItems(page *models.ListingPage) []list.Item {
	items := make([]list.Item, len(page.Tracks))
	for i, track := range page.Tracks {
		items[i] = trackItem{track: track}
	}
	return items
}
