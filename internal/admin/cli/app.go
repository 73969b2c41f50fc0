// Package cli implements crmctl, the interactive shell operators use to
// create CRM users, reset passwords and purge expired refresh tokens.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/crmauth/internal/common"
	"github.com/dmitrijs2005/crmauth/internal/server/models"
)

// UserAdmin is the service surface the shell drives.
// *services.UserService implements it.
type UserAdmin interface {
	CreateUser(ctx context.Context, email, name, role, password string) (*models.User, error)
	ChangePassword(ctx context.Context, email, password string) (int64, error)
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type App struct {
	users UserAdmin
	in    *bufio.Reader
	out   io.Writer
}

func NewApp(users UserAdmin, in io.Reader, out io.Writer) *App {
	return &App{users: users, in: bufio.NewReader(in), out: out}
}

// Run starts the shell and returns when the input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "crmctl: CRM user administration (type 'help' for commands)")
	runREPL(ctx, a, a.in, a.out)
}

// AddUser prompts for the new user's details and stores it.
func (a *App) AddUser(ctx context.Context) error {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.in, "Name", a.out)
	if err != nil {
		return err
	}
	role, err := GetSimpleText(a.in, fmt.Sprintf("Role (%s|%s, default %s)", common.RoleAdmin, common.RoleViewer, common.RoleViewer), a.out)
	if err != nil {
		return err
	}

	password, err := a.newPassword()
	if err != nil {
		return a.report(err)
	}

	u, err := a.users.CreateUser(ctx, email, name, role, password)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Created user %s (%s, role %s)\n", u.Email, u.ID, u.Role)
	return nil
}

// ChangePassword prompts for an email and a new password, then revokes the
// user's sessions.
func (a *App) ChangePassword(ctx context.Context) error {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := a.newPassword()
	if err != nil {
		return a.report(err)
	}

	revoked, err := a.users.ChangePassword(ctx, email, password)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Password changed, %d session(s) revoked\n", revoked)
	return nil
}

// Purge deletes expired refresh tokens once.
func (a *App) Purge(ctx context.Context) error {
	n, err := a.users.PurgeExpiredTokens(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Purged %d expired refresh token(s)\n", n)
	return nil
}

var errPasswordMismatch = errors.New("passwords do not match")

// newPassword reads a password twice without echo.
func (a *App) newPassword() (string, error) {
	first, err := GetPassword("Password", a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(first)

	second, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(second)

	if string(first) != string(second) {
		return "", errPasswordMismatch
	}
	return string(first), nil
}

// report prints a one-line description of err and returns it.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		fmt.Fprintln(a.out, "Error: a user with this email already exists")
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, "Error: user not found")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}
