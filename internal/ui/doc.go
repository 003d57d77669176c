// Package ui implements an interactive track picker using bubbletea's Elm architecture.
//
// The picker walks through four views:
//  1. [TrackListView] : Browse one page of SoundCloud tracks, paging with n/p
//  2. [ConfirmView] : Confirm downloading the selected track
//  3. [DownloadView] : Wait for the download to finish
//  4. [ResultView] : Show the saved path or the failure
//
// Pressing l on a track resolves its share link and shows it in the status line.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Remote calls run as [tea.Cmd] functions so the view never blocks.
package ui
