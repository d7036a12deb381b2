package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/adapter"
	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/session"
	"github.com/MKhiriev/go-pass-guard/internal/tui"
	"golang.org/x/sync/errgroup"
)

// popupTimeout bounds how long a popup sign-in waits for the user.
const popupTimeout = 5 * time.Minute

type command func(ctx context.Context, args []string) error

type App struct {
	machine  *session.Machine
	server   adapter.ServerAdapter
	prompt   Prompter
	strategy session.Strategy
	timeout  time.Duration
	copy     func(string) error
	out      io.Writer

	commands map[string]command
	logger   *logger.Logger
}

func NewApp(machine *session.Machine, server adapter.ServerAdapter, prompt Prompter, copyFn func(string) error, cfg *config.ClientConfig, out io.Writer, logger *logger.Logger) (*App, error) {
	strategy, err := session.ParseStrategy(cfg.Session.FederatedMode)
	if err != nil {
		return nil, err
	}

	a := &App{
		machine:  machine,
		server:   server,
		prompt:   prompt,
		strategy: strategy,
		timeout:  cfg.OperationTimeout,
		copy:     copyFn,
		out:      out,
		logger:   logger,
	}
	a.commands = map[string]command{
		"status":    a.status,
		"login":     a.login,
		"signup":    a.signUp,
		"federated": a.federated,
		"logout":    a.logout,
		"list":      a.list,
		"add":       a.add,
		"show":      a.show,
		"update":    a.update,
		"delete":    a.delete,
	}
	return a, nil
}

// Run starts the session machine, runs the command named by args[0] once
// the session is restored and stops the machine again. No command means
// status.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"status"}
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownCommand, args[0], strings.Join(a.commandNames(), ", "))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.machine.Run(gCtx)
	})
	g.Go(func() error {
		defer cancel()

		select {
		case <-a.machine.Ready():
		case <-gCtx.Done():
			return gCtx.Err()
		}

		a.logger.Debug().Str("command", args[0]).Str("phase", a.machine.Snapshot().Phase.String()).Msg("session restored")
		return cmd(gCtx, args[1:])
	})

	return g.Wait()
}

func (a *App) commandNames() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// settleFor waits until the session of principal uid reaches a resting
// phase. A reconciliation failure of uid ends the wait, failures of other
// principals are left behind.
func (a *App) settleFor(ctx context.Context, uid string) (session.Session, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	type result struct {
		s   session.Session
		err error
	}
	done := make(chan result, 1)
	go func() {
		s, err := a.machine.Wait(ctx, func(s session.Session) bool {
			return s.Principal != nil && s.Principal.UID == uid && (s.Phase == session.Linked || s.Phase == session.Unlinked)
		})
		done <- result{s, err}
	}()

	for {
		select {
		case r := <-done:
			return r.s, r.err
		case err := <-a.machine.Errors():
			var rerr *session.ReconcileError
			if errors.As(err, &rerr) && rerr.UID == uid {
				return a.machine.Snapshot(), err
			}
			a.logger.Warn().Err(err).Str("uid", uid).Msg("skipping error of an earlier session")
		}
	}
}

func (a *App) requireLinked() error {
	if s := a.machine.Snapshot(); s.Phase != session.Linked {
		return fmt.Errorf("%w: session is %s", ErrNotLinked, s.Phase)
	}
	return nil
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

// fill asks for the fields whose value is still empty.
func (a *App) fill(title string, fields []tui.Field) ([]string, error) {
	values := make([]string, len(fields))
	var missing []int
	for i, f := range fields {
		values[i] = f.Value
		if f.Value == "" {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return values, nil
	}

	ask := make([]tui.Field, len(missing))
	for i, idx := range missing {
		ask[i] = fields[idx]
	}
	answers, err := a.prompt.Prompt(title, ask)
	if err != nil {
		return nil, err
	}
	for i, idx := range missing {
		values[idx] = answers[i]
	}
	return values, nil
}
