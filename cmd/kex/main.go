package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kex/internal/bootstrap"
	"kex/internal/devserver"
	accountdto "kex/internal/modules/account/dto"
	"kex/internal/platform/config"
	apperrors "kex/internal/platform/errors"
	"kex/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configFile string
	apiURL     string
	level      string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "kex",
		Short:         "Knowledge explorer: learning paths in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default <data dir>/config.yaml)")
	root.PersistentFlags().StringVar(&flags.apiURL, "api", "", "backend base URL (overrides api.url)")
	root.PersistentFlags().StringVar(&flags.level, "level", "", "explanation level: basic|intermediate|advanced")

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newPathCmd(&flags))
	root.AddCommand(newSummaryCmd(&flags))
	root.AddCommand(newLoginCmd(&flags))
	root.AddCommand(newRegisterCmd(&flags))
	root.AddCommand(newLogoutCmd(&flags))
	root.AddCommand(newWhoamiCmd(&flags))
	root.AddCommand(newAdminCmd(&flags))
	root.AddCommand(newHistoryCmd(&flags))
	root.AddCommand(newCacheCmd(&flags))
	root.AddCommand(newDevServerCmd(&flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return config.Config{}, err
	}
	if flags.apiURL != "" {
		cfg.API.URL = flags.apiURL
	}
	if flags.level != "" {
		cfg.Level = flags.level
	}
	return cfg, cfg.Validate()
}

// levelFor picks the explanation level: flag first, then saved preference.
func levelFor(ctx context.Context, app *bootstrap.App, flags *globalFlags) string {
	if flags.level != "" {
		return flags.level
	}
	if prefs, err := app.PrefsCLI.Load(ctx); err == nil && prefs.Level != "" {
		return prefs.Level
	}
	return app.Config.Level
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Mode, cfg.LogPath())
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, log)
}

// withApp runs fn against a fully wired app and releases it afterwards.
func withApp(flags *globalFlags, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer func() {
		_ = app.Close()
		app.Log.Sync()
	}()
	return fn(app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive explorer",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, flags.level)
			})
		},
	}
}

func newPathCmd(flags *globalFlags) *cobra.Command {
	var export bool
	path := &cobra.Command{
		Use:   "path <topic>",
		Short: "Print the learning path for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				topic := strings.Join(args, " ")
				level := levelFor(cmd.Context(), app, flags)
				w := cmd.OutOrStdout()
				if export {
					note, err := app.TopicsCLI.ExportNote(cmd.Context(), topic, level)
					if err != nil {
						return err
					}
					_ = app.HistoryCLI.Record(cmd.Context(), note.Topic)
					_, _ = fmt.Fprintf(w, "exported %s (%d links) to %s\n", color.New(color.Bold).Sprint(note.Topic), note.Links, note.Path)
					return nil
				}
				out, err := app.TopicsCLI.LearningPath(cmd.Context(), topic, level)
				if err != nil {
					return err
				}
				_ = app.HistoryCLI.Record(cmd.Context(), out.Topic)
				title := color.New(color.Bold, color.Underline)
				_, _ = fmt.Fprintln(w, title.Sprint(out.Topic))
				_, _ = fmt.Fprintln(w, out.Summary)
				_, _ = fmt.Fprintln(w)
				tbl := uitable.New()
				tbl.Separator = "  "
				for i, link := range out.Links {
					tbl.AddRow(color.New(color.Faint).Sprintf("%2d", i+1), link)
				}
				_, _ = fmt.Fprintln(w, tbl)
				return nil
			})
		},
	}
	path.Flags().BoolVar(&export, "export", false, "write the path as a markdown note under notes.dir")
	return path
}

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <topic>",
		Short: "Print the summary of a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out, err := app.TopicsCLI.Summary(cmd.Context(), strings.Join(args, " "), levelFor(cmd.Context(), app, flags))
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint(out.Topic)+" "+color.New(color.Faint).Sprint("("+out.Level+")"))
				if out.Missing {
					_, _ = fmt.Fprintln(w, color.New(color.Italic, color.Faint).Sprint(out.Summary))
					return nil
				}
				_, _ = fmt.Fprintln(w, out.Summary)
				return nil
			})
		},
	}
}

// readSecret prompts for a password without echo when stdin is a terminal
// and reads a single line otherwise.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var username, password string
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				var err error
				if password, err = readSecret(cmd, "password: "); err != nil {
					return err
				}
			}
			return withApp(flags, func(app *bootstrap.App) error {
				user, err := app.AccountCLI.Login(cmd.Context(), username, password)
				if err != nil {
					return err
				}
				printUser(cmd.OutOrStdout(), "logged in as", user)
				return nil
			})
		},
	}
	login.Flags().StringVarP(&username, "username", "u", "", "username")
	login.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	return login
}

func newRegisterCmd(flags *globalFlags) *cobra.Command {
	var input accountdto.RegisterInput
	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input.Password == "" {
				var err error
				if input.Password, err = readSecret(cmd, "password: "); err != nil {
					return err
				}
			}
			return withApp(flags, func(app *bootstrap.App) error {
				user, err := app.AccountCLI.Register(cmd.Context(), input)
				if err != nil {
					return err
				}
				printUser(cmd.OutOrStdout(), "registered", user)
				return nil
			})
		},
	}
	register.Flags().StringVarP(&input.Username, "username", "u", "", "username")
	register.Flags().StringVarP(&input.Email, "email", "e", "", "email")
	register.Flags().StringVarP(&input.Password, "password", "p", "", "password (prompted when empty)")
	return register
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				err := app.AccountCLI.Logout(cmd.Context())
				if errors.Is(err, apperrors.ErrUnauthorized) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				user, err := app.AccountCLI.Me(cmd.Context())
				if errors.Is(err, apperrors.ErrUnauthorized) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
					return nil
				}
				if err != nil {
					return err
				}
				printUser(cmd.OutOrStdout(), "logged in as", user)
				return nil
			})
		},
	}
}

func printUser(w io.Writer, prefix string, u accountdto.UserOutput) {
	name := color.New(color.Bold).Sprint(u.Username)
	role := ""
	if u.IsAdmin {
		role = " " + color.YellowString("[admin]")
	}
	_, _ = fmt.Fprintf(w, "%s %s <%s>%s\n", prefix, name, u.Email, role)
}

func newAdminCmd(flags *globalFlags) *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "Administration commands"}
	admin.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				users, err := app.AccountCLI.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				bold := color.New(color.Bold)
				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Username"), bold.Sprint("Email"), bold.Sprint("Admin"))
				for _, u := range users {
					isAdmin := ""
					if u.IsAdmin {
						isAdmin = color.YellowString("yes")
					}
					tbl.AddRow(u.ID, u.Username, u.Email, isAdmin)
				}
				tbl.RightAlign(0)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
				return nil
			})
		},
	})
	return admin
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var wipe bool
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "Show or clear past searches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if wipe {
					if err := app.HistoryCLI.Clear(cmd.Context()); err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
					return nil
				}
				entries, err := app.HistoryCLI.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no history")
					return nil
				}
				tbl := uitable.New()
				tbl.Separator = "  "
				for _, e := range entries {
					tbl.AddRow(color.New(color.Faint).Sprint(e.LastUsed.Local().Format(time.DateTime)), e.Count, e.Topic)
				}
				tbl.RightAlign(1)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
				return nil
			})
		},
	}
	history.Flags().BoolVar(&wipe, "clear", false, "delete all history")
	history.Flags().IntVar(&limit, "limit", 20, "number of entries to show (0 for all)")
	return history
}

func newCacheCmd(flags *globalFlags) *cobra.Command {
	cache := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop all cached learning paths and summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.TopicsCLI.ClearCache(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
				return nil
			})
		},
	})
	return cache
}

func newDevServerCmd(flags *globalFlags) *cobra.Command {
	var addr, fixturesPath string
	dev := &cobra.Command{
		Use:   "devserver",
		Short: "Serve fixture learning paths and accounts locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Mode, "")
			if err != nil {
				return err
			}
			defer log.Sync()

			fixtures, err := devserver.DefaultFixtures()
			if fixturesPath != "" {
				fixtures, err = devserver.LoadFixtures(fixturesPath)
			}
			if err != nil {
				return err
			}
			srv, err := devserver.New(fixtures, log, devserver.Options{})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			httpSrv := &http.Server{Addr: addr, Handler: srv, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()
			log.Info("devserver listening", "addr", addr, "topics", len(fixtures.Topics))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "serving on %s\n", addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	dev.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	dev.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML fixture file (default built-in)")
	return dev
}
