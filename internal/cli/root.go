package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/GabrijelGordic/ShoeSteraj/internal/api"
	"github.com/GabrijelGordic/ShoeSteraj/internal/format"
	"github.com/GabrijelGordic/ShoeSteraj/internal/session"
	"github.com/GabrijelGordic/ShoeSteraj/internal/store"
	"github.com/GabrijelGordic/ShoeSteraj/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL    string
	ConfigDir  string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "shoesteraj",
		Short:        "ShoeSteraj marketplace client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive storefront TUI
  shoesteraj

  # Scriptable commands
  shoesteraj browse --brand Nike --page 2
  shoesteraj login alice
  shoesteraj like 42
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI storefront.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("SHOESTERAJ_BASE_URL", ""), "Marketplace API base URL (required)")
	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("SHOESTERAJ_CONFIG_DIR", ""), "Path to config dir (advanced: overrides ~/.shoesteraj; use for fixtures/tests)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SHOESTERAJ_FORMAT", "json"), "Output format (json|raw)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newRecentCmd(app))
	cmd.AddCommand(newSellCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newMineCmd(app))
	cmd.AddCommand(newLikeCmd(app))
	cmd.AddCommand(newWishlistCmd(app))
	cmd.AddCommand(newProfileCmd(app))
	cmd.AddCommand(newReviewCmd(app))

	return cmd
}

// env is the wired-up client: one credential store, one session store, one
// request pipeline, shared by every command in a single invocation.
type env struct {
	client  *api.Client
	creds   *store.CredentialStore
	session *session.Store
	svc     *session.Service
	cache   store.Cache
}

func buildEnv(app *App) (*env, error) {
	dir := app.ConfigDir
	if dir == "" {
		d, err := store.ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	creds, err := store.OpenCredentialStore(dir)
	if err != nil {
		return nil, err
	}
	client, err := api.New(app.BaseURL, creds)
	if err != nil {
		return nil, err
	}
	st := session.NewStore()
	return &env{
		client:  client,
		creds:   creds,
		session: st,
		svc:     session.NewService(client, creds, st),
		cache:   store.Cache{Dir: dir},
	}, nil
}

func runTUI(app *App) error {
	e, err := buildEnv(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Client:  e.client,
		Session: e.session,
		Service: e.svc,
		Cache:   e.cache,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
