package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/zerotask/zerotask/internal/client/config"
	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/common"
)

// authenticate runs one authentication attempt: first-run passcode setup or
// a passcode check in local mode, an email/password sign-in in remote mode.
// A failed attempt returns nil so the caller can loop; only I/O errors
// (EOF, closed terminal) are returned.
func (a *App) authenticate(ctx context.Context) error {
	if a.config.Backend == config.BackendRemote {
		return a.remoteLogin(ctx)
	}

	isSetup, err := a.auth.IsSetup(ctx)
	if err != nil {
		return err
	}
	if !isSetup {
		return a.setupPasscode(ctx)
	}
	return a.localLogin(ctx)
}

// setupPasscode configures the passcode on first run. The passcode is asked
// for twice to catch typos.
func (a *App) setupPasscode(ctx context.Context) error {
	printlnFn("No passcode configured yet. Set one up to protect your tasks.")

	passcode, err := getPasscode("Choose a passcode", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passcode)
	if len(passcode) == 0 {
		printlnFn("Passcode must not be empty.")
		return nil
	}

	confirm, err := getPasscode("Repeat the passcode", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(passcode) != string(confirm) {
		printlnFn("Passcodes do not match, try again.")
		return nil
	}

	if err := a.auth.Setup(ctx, string(passcode)); err != nil {
		printlnFn("Error:", err.Error())
		return nil
	}

	a.loggedIn = true
	a.audit.Append(ctx, models.ActionAuth, "Passcode configured")
	printlnFn("Passcode set.")
	return nil
}

func (a *App) localLogin(ctx context.Context) error {
	passcode, err := getPasscode("Enter passcode", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passcode)

	ok, err := a.auth.Login(ctx, string(passcode))
	if err != nil {
		printlnFn("Error:", err.Error())
		return nil
	}
	if !ok {
		printlnFn("Wrong passcode.")
		return nil
	}

	a.loggedIn = true
	a.audit.Append(ctx, models.ActionAuth, "Passcode accepted")
	return nil
}

func (a *App) remoteLogin(ctx context.Context) error {
	if _, err := a.api.Health(ctx); err != nil {
		return fmt.Errorf("server is unreachable: %w", err)
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPasscode("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.api.Login(ctx, email, string(password))
	if errors.Is(err, common.ErrUnauthorized) {
		answer, rerr := getSimpleText(a.reader, "Sign-in failed. Create an account with these credentials? (yes/no)", os.Stdout)
		if rerr != nil {
			return rerr
		}
		if answer != "yes" {
			return nil
		}
		if rerr := a.api.Register(ctx, email, string(password)); rerr != nil {
			printlnFn("Error:", rerr.Error())
			return nil
		}
		_, err = a.api.Login(ctx, email, string(password))
	}
	if err != nil {
		printlnFn("Error:", err.Error())
		return nil
	}

	a.loggedIn = true
	a.audit.SetUser(email)
	a.audit.Append(ctx, models.ActionAuth, fmt.Sprintf("Signed in as %s", email))
	return nil
}

// Logout ends the session: remote tokens are revoked, local auth metadata is
// wiped so the next start runs passcode setup again.
func (a *App) Logout(ctx context.Context) error {
	a.audit.Append(ctx, models.ActionSessionClear, "Session closed and local credentials cleared")

	if a.api != nil {
		if err := a.api.Logout(ctx); err != nil {
			a.log.Warn(ctx, "failed to revoke remote session", "error", err)
		}
	}
	if err := a.auth.ClearLocalData(ctx); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	a.loggedIn = false
	a.audit.SetUser("")
	return nil
}
