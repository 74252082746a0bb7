package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/istatata/bayan/internal/common"
)

// Login prompts for email and password and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	pw, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.session.Login(ctx, a.users.Users(), email, string(pw)); err != nil {
		printlnFn("Login failed: invalid email or password.")
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", a.session.Current().User.Name))
	return nil
}

// Logout closes the session and removes the stored refresh credential.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn(fmt.Sprintf("Logout error: %v", err))
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current session identity.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.Current()
	if snap.User == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> %s", snap.User.Name, snap.User.Email, snap.User.Role))
	return nil
}
