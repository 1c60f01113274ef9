package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"launchpad-api/internal/client"
	"launchpad-api/internal/session"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Log in and store the admin session" }
func (loginCmd) Usage() string       { return "login <email> [password]" }

// Run reads the password from LAUNCHPAD_PASSWORD when it is not passed.
func (loginCmd) Run(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	password := os.Getenv("LAUNCHPAD_PASSWORD")
	if len(args) == 2 {
		password = args[1]
	}
	if password == "" {
		return ErrUsage
	}

	profile, err := api.Login(ctx, args[0], password)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return errors.New("invalid email or password")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s <%s>\n", profile.Name, profile.Email)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored admin session" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, api *client.Client, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := api.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the stored admin session" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(_ context.Context, api *client.Client, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, err := api.Whoami()
	if errors.Is(err, session.ErrNoSession) {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s <%s> role=%s api=%s\n", s.Name, s.Email, s.Role, s.BaseURL)
	return nil
}

func init() {
	Register(loginCmd{})
	Register(logoutCmd{})
	Register(whoamiCmd{})
}
