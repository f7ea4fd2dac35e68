// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the HTTP front end
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the stream redirect server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the stream panel in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config if missing, initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.RollbackDatabase,
			},
		},
	}
}

// userCommand manages login credentials out of band
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Aliases: []string{"users"},
		Usage:   "Manage login credentials",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a user allowed to log in",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Login name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password, stored as a bcrypt hash",
						Required: true,
					},
				},
				Action: r.UserAdd,
			},
			{
				Name:  "list",
				Usage: "List users",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UserList,
			},
		},
	}
}

// streamsCommand manages the durable registry
func streamsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "streams",
		Aliases: []string{"stream"},
		Usage:   "Manage registered watch pages in the database",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Register a watch page",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "url",
						Usage:    "YouTube watch page URL",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Lookup name (defaults to the v parameter of the url)",
					},
				},
				Action: r.StreamsAdd,
			},
			{
				Name:  "list",
				Usage: "List registered watch pages",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.StreamsList,
			},
			{
				Name:  "export",
				Usage: "Export registered watch pages as CSV, Markdown or an M3U playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown or m3u",
						Value:   "m3u",
					},
					&cli.StringFlag{
						Name:  "base-url",
						Usage: "Public address of the server used in playlist links (defaults to server.host:port)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, - for stdout",
					},
				},
				Action: r.StreamsExport,
			},
		},
	}
}

// resolveCommand runs one extraction without the server
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Fetch a watch page and print its manifest URL",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "url",
				Usage:    "YouTube watch page URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Manifest format: dash, hls or all",
				Value:   "hls",
			},
		},
		Action: r.Resolve,
	}
}
