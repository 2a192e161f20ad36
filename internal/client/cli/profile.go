package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/session"
)

// Whoami prints the session state and, when signed in, the profile.
func (a *App) Whoami(_ context.Context) error {
	snap := a.sess.Snapshot()
	fmt.Fprintf(a.out, "Session: %s\n", snap.Status)
	if snap.IsAuthenticated() {
		a.printProfile()
	}
	if snap.Err != nil {
		fmt.Fprintf(a.out, "Last error: %s\n", snap.Err.Message)
	}
	return nil
}

func (a *App) printProfile() {
	snap := a.sess.Snapshot()
	p := snap.Profile
	if p == nil {
		return
	}

	label := snap.Role.Label()
	if snap.IsAdmin() {
		label += ", admin"
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", p.DisplayName(), p.Email, label)
	if p.Phone != "" {
		fmt.Fprintf(a.out, "  phone:    %s\n", p.Phone)
	}
	if p.Bio != "" {
		fmt.Fprintf(a.out, "  bio:      %s\n", p.Bio)
	}
	if snap.Role == models.RoleAgent {
		fmt.Fprintf(a.out, "  license:  %s\n", p.LicenseNumber)
		if p.Company != "" {
			fmt.Fprintf(a.out, "  company:  %s\n", p.Company)
		}
		if len(p.Specialties) > 0 {
			fmt.Fprintf(a.out, "  focus:    %s\n", strings.Join(p.Specialties, ", "))
		}
		fmt.Fprintf(a.out, "  rating:   %.1f (%d reviews)\n", p.Rating, p.TotalReviews)
	}
}

// Refresh reloads the profile from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.sess.Refresh(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Profile refreshed.")
	return nil
}

// EditProfile prompts for each editable field; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	snap := a.sess.Snapshot()
	if !snap.IsAuthenticated() {
		fmt.Fprintln(a.out, "Sign in first.")
		return session.ErrNotAuthenticated
	}
	p := snap.Profile

	var u models.ProfileUpdate
	var err error
	if u.FullName, err = a.askChange("Full name", p.FullName); err != nil {
		return err
	}
	if u.Phone, err = a.askChange("Phone", p.Phone); err != nil {
		return err
	}
	if u.Bio, err = a.askChange("Bio", p.Bio); err != nil {
		return err
	}
	if snap.Role == models.RoleAgent {
		if u.Company, err = a.askChange("Company", p.Company); err != nil {
			return err
		}
		s, err := a.askChange("Specialties (comma separated)", strings.Join(p.Specialties, ", "))
		if err != nil {
			return err
		}
		if s != nil {
			u.Specialties = splitList(*s)
		}
	}

	if u.Empty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}
	if err := a.sess.UpdateProfile(ctx, u); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// askChange returns nil when the answer is empty or equal to current.
func (a *App) askChange(label, current string) (*string, error) {
	s, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), a.out)
	if err != nil {
		return nil, err
	}
	if s == "" || s == current {
		return nil, nil
	}
	return &s, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// report prints a session error. A forced logout was already announced by
// watchNotices, so only its notice is consumed.
func (a *App) report(err error) {
	if a.sess.TakeNotice() != "" {
		return
	}
	fmt.Fprintln(a.out, session.Message(err))
}
