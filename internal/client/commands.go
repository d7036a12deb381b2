package client

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-guard/internal/session"
	"github.com/MKhiriev/go-pass-guard/internal/tui"
	"github.com/MKhiriev/go-pass-guard/models"
)

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parseWithID accepts the positional id before or after the flags.
func parseWithID(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if id == "" && fs.NArg() > 0 {
		id = fs.Arg(0)
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s needs an entry id", ErrMissingArgument, fs.Name())
	}
	return id, nil
}

func (a *App) status(ctx context.Context, _ []string) error {
	a.println(tui.RenderSession(a.machine.Snapshot()))

drain:
	for {
		select {
		case err := <-a.machine.Errors():
			a.println(tui.RenderError(err))
		default:
			break drain
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if version, err := a.server.Version(ctx); err == nil {
		a.println(tui.RenderHint("server " + version))
	} else {
		a.println(tui.RenderError(err))
	}
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	loginKey := fs.String("login-key", "", "login key (email)")
	secret := fs.String("secret", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	values, err := a.fill("Log in", []tui.Field{
		{Label: "login", Placeholder: "you@example.com", Value: *loginKey},
		{Label: "password", Value: *secret, Secret: true},
	})
	if err != nil {
		return err
	}

	callCtx, cancel := a.withTimeout(ctx)
	defer cancel()
	principal, err := a.machine.SignInWithPassword(callCtx, models.Credentials{LoginKey: values[0], Secret: values[1]})
	if err != nil {
		return err
	}

	return a.reportSettled(ctx, principal.UID)
}

// signUp completes the owner record of an unlinked principal, or creates a
// password account otherwise.
func (a *App) signUp(ctx context.Context, args []string) error {
	if a.machine.Snapshot().Phase == session.Unlinked {
		callCtx, cancel := a.withTimeout(ctx)
		defer cancel()
		if _, err := a.machine.CompleteSignUp(callCtx); err != nil {
			return err
		}
		a.println(tui.RenderSuccess("owner account created"))
		a.println(tui.RenderSession(a.machine.Snapshot()))
		return nil
	}

	fs := a.flagSet("signup")
	loginKey := fs.String("login-key", "", "login key (email)")
	secret := fs.String("secret", "", "password")
	avatarURL := fs.String("avatar", "", "avatar URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	values, err := a.fill("Sign up", []tui.Field{
		{Label: "login", Placeholder: "you@example.com", Value: *loginKey},
		{Label: "password", Value: *secret, Secret: true},
	})
	if err != nil {
		return err
	}

	callCtx, cancel := a.withTimeout(ctx)
	defer cancel()
	principal, err := a.machine.SignUpWithPassword(callCtx, models.SignUpRequest{
		LoginKey:  values[0],
		Secret:    values[1],
		AvatarURL: *avatarURL,
	})
	if err != nil {
		return err
	}

	return a.reportSettled(ctx, principal.UID)
}

func (a *App) federated(ctx context.Context, args []string) error {
	fs := a.flagSet("federated")
	mode := fs.String("mode", string(a.strategy), "popup or redirect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: federated needs a provider (google or github)", ErrMissingArgument)
	}

	provider := models.Provider(fs.Arg(0))
	if !provider.IsFederated() {
		return fmt.Errorf("%w: unsupported provider %q", ErrMissingArgument, provider)
	}
	strategy, err := session.ParseStrategy(*mode)
	if err != nil {
		return err
	}

	signInCtx, cancel := context.WithTimeout(ctx, popupTimeout)
	defer cancel()

	principal, err := a.machine.SignInWithFederated(signInCtx, provider, strategy)
	if err != nil {
		return err
	}
	if principal == nil {
		a.println(tui.RenderSession(a.machine.Snapshot()))
		return nil
	}

	return a.reportSettled(ctx, principal.UID)
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.machine.SignOut(ctx); err != nil {
		return err
	}
	a.println(tui.RenderSuccess("signed out"))
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	query := fs.String("q", "", "filter by website or username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLinked(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	entries, err := a.server.ListEntries(ctx, *query)
	if err != nil {
		return err
	}

	a.println(tui.RenderEntries(entries))
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	website := fs.String("website", "", "website")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLinked(); err != nil {
		return err
	}

	values, err := a.fill("New entry", []tui.Field{
		{Label: "website", Placeholder: "example.com", Value: *website},
		{Label: "username", Value: *username},
		{Label: "password", Value: *password, Secret: true},
	})
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	entry, err := a.server.AddEntry(ctx, models.EntryInput{Website: values[0], Username: values[1], Password: values[2]})
	if err != nil {
		return err
	}

	a.println(tui.RenderSuccess("Password saved!"))
	a.println(tui.RenderEntry(entry, false))
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	fs := a.flagSet("show")
	reveal := fs.Bool("reveal", false, "print the password")
	copyPassword := fs.Bool("copy", false, "copy the password to the clipboard")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}
	if err = a.requireLinked(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	entry, err := a.server.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	a.println(tui.RenderEntry(entry, *reveal))
	if *copyPassword {
		if err = a.copy(entry.Password); err != nil {
			return fmt.Errorf("copy password: %w", err)
		}
		a.println(tui.RenderHint("password copied to clipboard"))
	}
	return nil
}

// update replaces the mutable fields of an entry. Without flags the current
// values are offered for editing.
func (a *App) update(ctx context.Context, args []string) error {
	fs := a.flagSet("update")
	website := fs.String("website", "", "website")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}
	if err = a.requireLinked(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	current, err := a.server.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	in := models.EntryInput{Website: current.Website, Username: current.Username, Password: current.Password}
	if fs.NFlag() == 0 {
		values, err := a.prompt.Prompt("Update "+current.Website, []tui.Field{
			{Label: "website", Value: in.Website},
			{Label: "username", Value: in.Username},
			{Label: "password", Value: in.Password, Secret: true},
		})
		if err != nil {
			return err
		}
		in = models.EntryInput{Website: values[0], Username: values[1], Password: values[2]}
	} else {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "website":
				in.Website = *website
			case "username":
				in.Username = *username
			case "password":
				in.Password = *password
			}
		})
	}

	entry, err := a.server.UpdateEntry(ctx, id, in)
	if err != nil {
		return err
	}

	a.println(tui.RenderSuccess("entry updated"))
	a.println(tui.RenderEntry(entry, false))
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, err := parseWithID(a.flagSet("delete"), args)
	if err != nil {
		return err
	}
	if err = a.requireLinked(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if err = a.server.DeleteEntry(ctx, id); err != nil {
		return err
	}

	a.println(tui.RenderSuccess("entry deleted"))
	return nil
}

func (a *App) reportSettled(ctx context.Context, uid string) error {
	s, err := a.settleFor(ctx, uid)
	a.println(tui.RenderSession(s))
	return err
}
