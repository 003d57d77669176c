package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/scx/internal/formatter"
	"github.com/desertthunder/scx/internal/models"
	"github.com/desertthunder/scx/internal/services"
	"github.com/desertthunder/scx/internal/shared"
	"github.com/urfave/cli/v3"
)

// trackLookup is implemented by sources that can fetch a single track's metadata.
type trackLookup interface {
	Track(ctx context.Context, trackID int64) (*models.Track, error)
}

// TracksList prints one page of the user's tracks.
func (r *Runner) TracksList(ctx context.Context, cmd *cli.Command) error {
	source, err := r.trackSource(ctx)
	if err != nil {
		return err
	}

	page, err := source.ListTracks(ctx, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	format := formatter.FormatText
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}
	if f := cmd.String("format"); f != "" {
		if format, err = formatter.ParseFormat(f); err != nil {
			return err
		}
	}

	if out := cmd.String("output"); out != "" {
		if cmd.String("format") == "" && !cmd.Bool("json") {
			format = ""
		}
		if err := formatter.WriteListing(page, out, format); err != nil {
			return err
		}
		r.logger.Info("listing saved", "path", out, "tracks", len(page.Tracks))
		return nil
	}

	if format == formatter.FormatJSON {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	data, err := formatter.Render(page, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// TracksLink prints the shareable link of a track.
func (r *Runner) TracksLink(ctx context.Context, cmd *cli.Command) error {
	id, err := parseTrackID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	source, err := r.trackSource(ctx)
	if err != nil {
		return err
	}

	link, err := source.ResolveLink(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to resolve link: %w", err)
	}
	return r.writePlain("%s\n", link)
}

// TracksGet downloads a track to --output, or to a free path in --dir named after the upload.
func (r *Runner) TracksGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseTrackID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	source, err := r.trackSource(ctx)
	if err != nil {
		return err
	}

	dest := cmd.String("output")
	if dest == "" {
		dir := cmd.String("dir")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		dest = formatter.DestinationPath(dir, r.downloadName(ctx, source, id))
	}

	r.logger.Info("downloading track", "id", id, "dest", dest)
	result, err := source.DownloadTrack(ctx, id, dest)
	if err != nil {
		return err
	}

	r.writePlain("✓ Saved %s\n", result.Path)
	r.writePlain("Source: %s\n", result.SourceURL)
	return nil
}

// downloadName returns the upload's file name, or the track id when the source cannot say.
func (r *Runner) downloadName(ctx context.Context, source services.TrackSource, id int64) string {
	if lookup, ok := source.(trackLookup); ok {
		track, err := lookup.Track(ctx, id)
		if err == nil {
			return track.Filename()
		}
		r.logger.Debug("track lookup failed", "id", id, "error", err)
	}
	return strconv.FormatInt(id, 10)
}

func parseTrackID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: track id must be a positive integer, got %q", shared.ErrInvalidArgument, s)
	}
	return id, nil
}
