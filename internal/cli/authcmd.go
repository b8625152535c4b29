package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/vibeos/vibeos/internal/auth"
	"github.com/vibeos/vibeos/internal/constants"
	apperrors "github.com/vibeos/vibeos/internal/errors"
	"github.com/vibeos/vibeos/internal/logger"
)

type LoginCmd struct {
	Email    string `help:"Account email. Prompted when omitted."`
	Password string `help:"Account password. Prompted when omitted."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if c.Email == "" || c.Password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&c.Email).
					Validate(requireValue("email")),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&c.Password).
					Validate(requireValue("password")),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	creds, err := ctx.Auth.SignIn(reqCtx, c.Email, c.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrAuthenticationRequired) {
			return fmt.Errorf("sign in rejected, check your email and password")
		}
		return err
	}
	if err := auth.SaveCredentials(creds); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	if err := ctx.Reconciler.SignedIn(reqCtx); err != nil {
		logger.Warn("signed in but initial fetch failed", "error", err)
		fmt.Println("Signed in, but fetching remote data failed. Run 'vibeos sync --pull' to retry.")
		return nil
	}

	fmt.Printf("Signed in as %s. Remote data loaded.\n", creds.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	if creds, err := auth.LoadCredentials(); err == nil {
		if err := ctx.Auth.SignOut(reqCtx, creds.AccessToken); err != nil {
			logger.Warn("remote sign out failed", "error", err)
		}
	}
	if err := auth.DeleteCredentials(); err != nil && !errors.Is(err, auth.ErrNotFound) {
		return err
	}

	ctx.Reconciler.SignedOut()
	fmt.Println("Signed out. Local session cleared.")
	return nil
}

type SignupCmd struct {
	Email string `help:"Account email. Prompted when omitted."`
	Name  string `help:"Display name. Prompted when omitted."`
}

func (c *SignupCmd) Run(ctx *Context) error {
	var password, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(requireValue("email")),
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(requireValue("name")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(requireValue("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	if err := ctx.Auth.SignUp(reqCtx, c.Email, password, c.Name); err != nil {
		return err
	}

	fmt.Println("Account created. Run 'vibeos login' to sign in.")
	return nil
}

func requireValue(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
