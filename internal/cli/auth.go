package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/GabrijelGordic/ShoeSteraj/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and persist the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			secret, err := resolveSecret(cmd, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := e.svc.Login(cmd.Context(), args[0], secret)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, id)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (omit to be prompted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session token (best-effort) and clear local state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e.svc.Logout(cmd.Context())
			return writeOut(cmd, app, map[string]string{"status": string(session.StatusAnonymous)})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the persisted session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e.svc.Restore(cmd.Context())
			id := e.session.Identity()
			if id == nil {
				return writeErr(cmd, errNotLoggedIn)
			}
			return writeOut(cmd, app, id)
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				return writeErr(cmd, errors.New("missing --email"))
			}
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			secret, err := resolveSecret(cmd, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := e.svc.Register(cmd.Context(), args[0], email, secret)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, id)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (omit to be prompted)")
	return cmd
}

// resolveSecret takes the --password flag when given, otherwise prompts
// without echo on a terminal, otherwise reads one line (scripted stdin).
func resolveSecret(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("missing password (pass --password or pipe it on stdin)")
	}
	return strings.TrimSpace(line), nil
}
