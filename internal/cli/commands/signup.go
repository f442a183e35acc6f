package commands

import (
	"bufio"
	"context"

	"WishlistX/internal/cli/api"
	"WishlistX/internal/cli/bootstrap"
	"WishlistX/internal/config"
)

type signupCmd struct{}

func (signupCmd) Name() string        { return "signup" }
func (signupCmd) Description() string { return "Create an account; a verification code is sent out of band" }
func (signupCmd) Usage() string {
	return "signup --email=E --first-name=F --last-name=L --phone=P [--password=X]"
}

func (signupCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var s api.Signup
	fs := newFlags("signup")
	fs.StringVar(&s.Email, "email", "", "email")
	fs.StringVar(&s.FirstName, "first-name", "", "first name")
	fs.StringVar(&s.LastName, "last-name", "", "last name")
	fs.StringVar(&s.Phone, "phone", "", "phone in E.164 format")
	fs.StringVar(&s.Password, "password", "", "password")
	rest, err := parseFlags(fs, args)
	if err != nil || len(rest) != 0 {
		return ErrUsage
	}
	if s.Email == "" || s.Phone == "" {
		return ErrUsage
	}
	if s.Password == "" {
		r := bufio.NewReader(In)
		var got bool
		if s.Password, got = promptSecret(r, "Password: "); !got {
			return ErrUsage
		}
		if s.PasswordConfirmation, got = promptSecret(r, "Confirm password: "); !got {
			return ErrUsage
		}
	} else {
		s.PasswordConfirmation = s.Password
	}

	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Client.Signup(ctx, s); err != nil {
			return err
		}
		success("Account created. Enter the code: wxcli verify %s <code>", s.Phone)
		return nil
	})
}

type verifyCmd struct{}

func (verifyCmd) Name() string        { return "verify" }
func (verifyCmd) Description() string { return "Confirm the phone with the received code and sign in" }
func (verifyCmd) Usage() string       { return "verify <phone> <code>" }

func (verifyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withApp(ctx, cfg, func(app *bootstrap.App) error {
		if err := app.Session.Verify(ctx, args[0], args[1]); err != nil {
			return err
		}
		success("Phone verified, signed in as %s", args[0])
		return nil
	})
}

func init() {
	RegisterCmd(signupCmd{})
	RegisterCmd(verifyCmd{})
}
