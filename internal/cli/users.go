package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/models"
)

// ListUsers prints the identity directory.
func (a *App) ListUsers(ctx context.Context) error {
	for _, u := range a.users.Users() {
		printlnFn(fmt.Sprintf("[%s] %s <%s> %s %s", u.ID, u.Name, u.Email, u.Role, u.Specialization))
	}
	return nil
}

// AddUser prompts for identity fields and creates the account.
func (a *App) AddUser(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	role, err := GetSimpleText(a.reader, "Role (admin/trainee)", os.Stdout)
	if err != nil {
		return err
	}
	spec, err := GetSimpleText(a.reader, "Specialization", os.Stdout)
	if err != nil {
		return err
	}
	pw, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	u := models.User{
		Name:           name,
		Email:          models.NormalizeEmail(email),
		Role:           models.Role(role),
		Specialization: spec,
	}
	created, err := a.users.Add(ctx, u, string(pw))
	if err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn(fmt.Sprintf("User %s created.", created.ID))
	return nil
}

// EditUser prompts for new profile fields of an existing identity. The
// password is never touched here; use ChangePassword for that.
func (a *App) EditUser(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "User id", os.Stdout)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	spec, err := GetSimpleText(a.reader, "Specialization", os.Stdout)
	if err != nil {
		return err
	}

	u := models.User{
		ID:             id,
		Name:           name,
		Email:          models.NormalizeEmail(email),
		Specialization: spec,
	}
	if err := a.users.Update(ctx, u); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn("User updated.")
	return nil
}

// ChangePassword prompts for a user id and a new password.
func (a *App) ChangePassword(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "User id", os.Stdout)
	if err != nil {
		return err
	}
	pw, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.users.ChangePassword(ctx, id, string(pw)); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn("Password changed.")
	return nil
}

// DeleteUser prompts for a user id and removes the identity.
func (a *App) DeleteUser(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "User id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.users.Delete(ctx, id); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn("User deleted.")
	return nil
}
