package commands

import (
	"bufio"
	"context"

	"WishlistX/internal/cli/bootstrap"
	"WishlistX/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Sign in and store the auth token" }
func (loginCmd) Usage() string       { return "login <phone> [password]" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	phone := args[0]
	var password string
	if len(args) == 2 {
		password = args[1]
	} else {
		var got bool
		password, got = promptSecret(bufio.NewReader(In), "Password: ")
		if !got {
			return ErrUsage
		}
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Session.SignIn(ctx, phone, password); err != nil {
			return err
		}
		success("Signed in as %s", phone)
		return nil
	})
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Sign out and forget the auth token" }
func (logoutCmd) Usage() string       { return "logout [--yes]" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlags("logout")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	rest, err := parseFlags(fs, args)
	if err != nil || len(rest) != 0 {
		return ErrUsage
	}
	if !confirm("Sign out?", *yes) {
		success("Sign out cancelled")
		return nil
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Session.SignOut(ctx); err != nil {
			return err
		}
		success("Signed out")
		return nil
	})
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show API address, token store and sign-in state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		signedIn, err := app.Session.Authenticated(ctx)
		if err != nil {
			return err
		}
		state := "signed out"
		if signedIn {
			state = "signed in"
		} else if cfg.HasCredentials() {
			state = "signed out (credentials configured)"
		}
		success("API: %s", cfg.ServerURL)
		success("Store: %s (%s)", cfg.StoreBackend, cfg.StorePath)
		success("Session: %s", state)
		return nil
	})
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(statusCmd{})
}
