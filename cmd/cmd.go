// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the config file if missing, initialize the database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recently applied migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles the SoundCloud OAuth2 session
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage SoundCloud authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authorize scx with SoundCloud in the browser",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored access token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show whether an access token is held and who it belongs to",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// tracksCommand handles listing, linking and downloading tracks
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tracks",
		Aliases: []string{"t"},
		Usage:   "Browse and download your tracks",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List one page of your tracks",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page number, out of range pages show the first page",
						Value:   1,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, csv, md, json)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the listing to a file instead of stdout",
					},
				},
				Action: r.TracksList,
			},
			{
				Name:  "link",
				Usage: "Print the shareable link of a track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.TracksLink,
			},
			{
				Name:  "get",
				Usage: "Download the original upload of a track",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Destination file path, an existing file is replaced once the download completes",
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Directory to save into when --output is not given",
						Value:   ".",
					},
				},
				Action: r.TracksGet,
			},
		},
	}
}

// settingsCommand handles the operator's client credentials
func settingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the SoundCloud client settings",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the client id, masked secret and the redirect URI to register",
				Action: r.SettingsShow,
			},
			{
				Name:  "set",
				Usage: "Store the client id and secret issued by SoundCloud",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "client-id",
						Usage:    "SoundCloud client id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "client-secret",
						Usage:    "SoundCloud client secret",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name of the repository",
					},
				},
				Action: r.SettingsSet,
			},
			{
				Name:  "unset",
				Usage: "Remove a stored setting (client-id, client-secret or name)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "setting"},
				},
				Action: r.SettingsUnset,
			},
		},
	}
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show installed version, store backend and supported file types",
		Action: r.Status,
	}
}

// tuiCommand returns the top-level TUI command for the interactive track picker.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive track picker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory downloads are saved into",
				Value:   ".",
			},
		},
		Action: r.TUI,
	}
}
