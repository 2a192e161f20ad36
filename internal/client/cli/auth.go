package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/session"
	"github.com/dmitrijs2005/househunt/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// askRole prompts until the answer is a known role.
func (a *App) askRole(prompt string) (models.Role, error) {
	labels := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		labels[i] = r.Label()
	}
	choices := strings.Join(labels, "/")

	for {
		s, err := getSimpleText(a.reader, prompt+" ("+choices+")", a.out)
		if err != nil {
			return "", err
		}
		r, err := models.ParseRole(s)
		if err == nil {
			return r, nil
		}
		fmt.Fprintf(a.out, "Please answer one of: %s.\n", strings.Join(labels, ", "))
	}
}

// Register collects the sign-up form for the chosen role, creates the
// account and signs the new user in with the same credentials.
func (a *App) Register(ctx context.Context) error {
	role, err := a.askRole("Register as")
	if err != nil {
		return err
	}

	var form models.RegisterForm
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Email", &form.Email},
		{"Username", &form.Username},
		{"Full name", &form.FullName},
		{"Phone", &form.Phone},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}
	if role == models.RoleAgent {
		if form.LicenseNumber, err = getSimpleText(a.reader, "License number", a.out); err != nil {
			return err
		}
		if form.Company, err = getSimpleText(a.reader, "Company (optional)", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form.Password = string(password)
	form.ConfirmPassword = string(confirm)

	if _, err := a.sess.Register(ctx, role, form); err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return err
	}
	fmt.Fprintln(a.out, "Account created, signing in...")

	return a.signIn(ctx, role, form.Username, password)
}

// Login asks for the role and credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	role, err := a.askRole("Sign in as")
	if err != nil {
		return err
	}

	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.signIn(ctx, role, userName, password)
}

func (a *App) signIn(ctx context.Context, role models.Role, userName string, password []byte) error {
	if err := a.sess.Login(ctx, role, userName, password); err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return err
	}

	snap := a.sess.Snapshot()
	fmt.Fprintf(a.out, "Welcome, %s!\n", snap.Profile.DisplayName())
	return a.Open(ctx, homeRoutes[snap.Role])
}

// Logout ends the session on this device.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sess.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, session.Message(err))
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
