package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/mock"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	alice = models.Principal{UID: "g-1", Email: "alice@example.com", DisplayName: "Alice", Provider: models.ProviderGoogle}
	bob   = models.Principal{UID: "pw-2", Email: "bob@example.com", Provider: models.ProviderPassword}

	aliceOwner = models.Owner{OwnerID: "owner-1", LoginKey: "alice@example.com", PrincipalID: "g-1"}
	bobOwner   = models.Owner{OwnerID: "owner-2", LoginKey: "bob@example.com", PrincipalID: "pw-2"}
)

type harness struct {
	machine    *Machine
	identity   *mock.MockIdentityClient
	reconciler *mock.MockReconciler

	mu           sync.Mutex
	emit         func(*models.Principal)
	unsubscribed bool
}

// newHarness expects the startup calls: the listener reports initial and the
// redirect check returns redirect.
func newHarness(t *testing.T, initial, redirect *models.Principal) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		identity:   mock.NewMockIdentityClient(ctrl),
		reconciler: mock.NewMockReconciler(ctrl),
	}
	h.machine = New(h.identity, h.reconciler, WithTimeout(time.Second))

	h.identity.EXPECT().SubscribeAuthState(gomock.Any()).DoAndReturn(func(fn func(*models.Principal)) func() {
		h.mu.Lock()
		h.emit = fn
		h.mu.Unlock()
		fn(initial)
		return func() {
			h.mu.Lock()
			h.unsubscribed = true
			h.mu.Unlock()
		}
	})
	h.identity.EXPECT().PendingRedirectResult(gomock.Any()).Return(redirect, nil)
	return h
}

func (h *harness) start(t *testing.T) (stop func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.machine.Run(ctx) }()

	select {
	case <-h.machine.Ready():
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("machine never became ready")
	}

	var once sync.Once
	var runErr error
	stop = func() error {
		once.Do(func() {
			cancel()
			runErr = <-done
		})
		return runErr
	}
	t.Cleanup(func() { _ = stop() })
	return stop
}

func (h *harness) fire(p *models.Principal) {
	h.mu.Lock()
	fn := h.emit
	h.mu.Unlock()
	fn(p)
}

func waitFor(t *testing.T, m *Machine, cond func(Session) bool) Session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := m.Wait(ctx, cond)
	require.NoError(t, err, "last session: %+v", s)
	return s
}

func phaseIs(p Phase) func(Session) bool {
	return func(s Session) bool { return s.Phase == p }
}

func ptr[T any](v T) *T { return &v }

// ── startup ──────────────────────────────────────────────────────────────────

func TestMachine_Startup(t *testing.T) {
	storeDown := fmt.Errorf("%w: connection refused", service.ErrStore)

	tests := []struct {
		name     string
		initial  *models.Principal
		redirect *models.Principal
		setup    func(r *mock.MockReconciler)
		want     Session
		wantErr  error
	}{
		{
			name: "nobody signed in",
			want: Session{Phase: Unauthenticated},
		},
		{
			name:    "restored principal with owner is linked",
			initial: &alice,
			setup: func(r *mock.MockReconciler) {
				r.EXPECT().LogIn(gomock.Any(), alice.Email).Return(aliceOwner, nil)
			},
			want: Session{Principal: &alice, Phase: Linked, Owner: &aliceOwner},
		},
		{
			name:    "restored principal without owner is unlinked",
			initial: &alice,
			setup: func(r *mock.MockReconciler) {
				r.EXPECT().LogIn(gomock.Any(), alice.Email).
					Return(models.Owner{}, fmt.Errorf("%w: %s", service.ErrOwnerNotFound, alice.Email))
			},
			want: Session{Principal: &alice, Phase: Unlinked},
		},
		{
			name:     "redirect result and listener report the same principal",
			initial:  &alice,
			redirect: &alice,
			setup: func(r *mock.MockReconciler) {
				r.EXPECT().LogIn(gomock.Any(), alice.Email).Return(aliceOwner, nil).Times(2)
			},
			want: Session{Principal: &alice, Phase: Linked, Owner: &aliceOwner},
		},
		{
			name:    "principal without email is not looked up",
			initial: &models.Principal{UID: "gh-9", Provider: models.ProviderGitHub},
			want: Session{
				Principal: &models.Principal{UID: "gh-9", Provider: models.ProviderGitHub},
				Phase:     Authenticated,
			},
			wantErr: service.ErrMissingIdentityAttribute,
		},
		{
			name:    "store failure keeps the session authenticated",
			initial: &bob,
			setup: func(r *mock.MockReconciler) {
				r.EXPECT().LogIn(gomock.Any(), bob.Email).Return(models.Owner{}, storeDown)
			},
			want:    Session{Principal: &bob, Phase: Authenticated},
			wantErr: service.ErrStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.initial, tt.redirect)
			if tt.setup != nil {
				tt.setup(h.reconciler)
			}
			h.start(t)

			if diff := cmp.Diff(tt.want, h.machine.Snapshot()); diff != "" {
				t.Errorf("session mismatch (-want +got):\n%s", diff)
			}

			if tt.wantErr != nil {
				select {
				case err := <-h.machine.Errors():
					assert.ErrorIs(t, err, tt.wantErr)
				default:
					t.Fatal("expected a reported error")
				}
			} else {
				assert.Empty(t, h.machine.Errors())
			}
		})
	}
}

func TestMachine_Run_StopsOnCancel(t *testing.T) {
	h := newHarness(t, nil, nil)
	stop := h.start(t)

	require.NoError(t, stop())

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.True(t, h.unsubscribed)
}

func TestMachine_Run_Twice(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.start(t)

	err := h.machine.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestMachine_UnfinishedRedirect(t *testing.T) {
	tests := []struct {
		name    string
		initial *models.Principal
		setup   func(r *mock.MockReconciler)
		want    Session
	}{
		{
			name: "nobody signed in waits for the redirect",
			want: Session{Phase: AuthPending, PendingRedirect: true},
		},
		{
			name:    "restored principal keeps its phase",
			initial: &alice,
			setup: func(r *mock.MockReconciler) {
				r.EXPECT().LogIn(gomock.Any(), alice.Email).Return(aliceOwner, nil)
			},
			want: Session{Principal: &alice, Phase: Linked, PendingRedirect: true, Owner: &aliceOwner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			identity := mock.NewMockIdentityClient(ctrl)
			reconciler := mock.NewMockReconciler(ctrl)
			if tt.setup != nil {
				tt.setup(reconciler)
			}
			m := New(identity, reconciler)

			identity.EXPECT().SubscribeAuthState(gomock.Any()).DoAndReturn(func(fn func(*models.Principal)) func() {
				fn(tt.initial)
				return func() {}
			})
			identity.EXPECT().PendingRedirectResult(gomock.Any()).
				Return(nil, fmt.Errorf("%w: github", ErrRedirectPending))

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- m.Run(ctx) }()
			defer func() {
				cancel()
				<-done
			}()

			select {
			case <-m.Ready():
			case <-time.After(2 * time.Second):
				t.Fatal("machine never became ready")
			}

			if diff := cmp.Diff(tt.want, m.Snapshot()); diff != "" {
				t.Errorf("session mismatch (-want +got):\n%s", diff)
			}
			assert.Empty(t, m.Errors())
		})
	}
}

func TestMachine_ReconcileErrorNamesPrincipal(t *testing.T) {
	h := newHarness(t, &bob, nil)
	h.reconciler.EXPECT().LogIn(gomock.Any(), bob.Email).Return(models.Owner{}, service.ErrStore)
	h.start(t)

	err := <-h.machine.Errors()

	var rerr *ReconcileError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, bob.UID, rerr.UID)
	assert.ErrorIs(t, err, service.ErrStore)
}

func TestMachine_PendingRedirectFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	identity := mock.NewMockIdentityClient(ctrl)
	m := New(identity, mock.NewMockReconciler(ctrl))

	identity.EXPECT().SubscribeAuthState(gomock.Any()).DoAndReturn(func(fn func(*models.Principal)) func() {
		fn(nil)
		return func() {}
	})
	identity.EXPECT().PendingRedirectResult(gomock.Any()).Return(nil, service.ErrTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	<-m.Ready()
	assert.Equal(t, Unauthenticated, m.Snapshot().Phase)
	assert.ErrorIs(t, <-m.Errors(), service.ErrTimeout)
}

// ── sign-in ──────────────────────────────────────────────────────────────────

func TestMachine_SignInWithPassword(t *testing.T) {
	h := newHarness(t, nil, nil)
	creds := models.Credentials{LoginKey: bob.Email, Secret: "hunter2"}

	h.identity.EXPECT().SignInWithPassword(gomock.Any(), creds).
		DoAndReturn(func(context.Context, models.Credentials) (models.Principal, error) {
			h.fire(&bob)
			return bob, nil
		})
	h.reconciler.EXPECT().LogIn(gomock.Any(), bob.Email).Return(bobOwner, nil)
	h.start(t)

	got, err := h.machine.SignInWithPassword(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	s := waitFor(t, h.machine, phaseIs(Linked))
	if diff := cmp.Diff(Session{Principal: &bob, Phase: Linked, Owner: &bobOwner}, s); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestMachine_SignInWithPassword_Rejected(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.identity.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).
		Return(models.Principal{}, service.ErrInvalidCredentials)
	h.start(t)

	_, err := h.machine.SignInWithPassword(context.Background(), models.Credentials{LoginKey: "x", Secret: "y"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Equal(t, Unauthenticated, h.machine.Snapshot().Phase)
}

func TestMachine_SignUpWithPassword(t *testing.T) {
	h := newHarness(t, nil, nil)
	req := models.SignUpRequest{LoginKey: bob.Email, Secret: "hunter2"}

	h.identity.EXPECT().SignUpWithPassword(gomock.Any(), req).
		DoAndReturn(func(context.Context, models.SignUpRequest) (models.Principal, error) {
			h.fire(&bob)
			return bob, nil
		})
	h.reconciler.EXPECT().LogIn(gomock.Any(), bob.Email).Return(bobOwner, nil)
	h.start(t)

	_, err := h.machine.SignUpWithPassword(context.Background(), req)
	require.NoError(t, err)
	waitFor(t, h.machine, phaseIs(Linked))
}

func TestMachine_SignInWithFederated_Popup(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.identity.EXPECT().SignInWithPopup(gomock.Any(), models.ProviderGoogle).
		DoAndReturn(func(context.Context, models.Provider) (models.Principal, error) {
			h.fire(&alice)
			return alice, nil
		})
	h.reconciler.EXPECT().LogIn(gomock.Any(), alice.Email).
		Return(models.Owner{}, service.ErrOwnerNotFound)
	h.start(t)

	got, err := h.machine.SignInWithFederated(context.Background(), models.ProviderGoogle, StrategyPopup)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.UID, got.UID)

	s := waitFor(t, h.machine, phaseIs(Unlinked))
	assert.Nil(t, s.Owner)
}

func TestMachine_SignInWithFederated_Redirect(t *testing.T) {
	t.Run("session waits for the redirect result", func(t *testing.T) {
		h := newHarness(t, nil, nil)
		h.identity.EXPECT().SignInWithRedirect(gomock.Any(), models.ProviderGitHub).Return(nil)
		h.start(t)

		got, err := h.machine.SignInWithFederated(context.Background(), models.ProviderGitHub, StrategyRedirect)
		require.NoError(t, err)
		assert.Nil(t, got)

		if diff := cmp.Diff(Session{Phase: AuthPending, PendingRedirect: true}, h.machine.Snapshot()); diff != "" {
			t.Errorf("session mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("failed hand-over restores the previous session", func(t *testing.T) {
		h := newHarness(t, nil, nil)
		h.identity.EXPECT().SignInWithRedirect(gomock.Any(), models.ProviderGitHub).Return(service.ErrProvider)
		h.start(t)

		_, err := h.machine.SignInWithFederated(context.Background(), models.ProviderGitHub, StrategyRedirect)
		assert.ErrorIs(t, err, service.ErrProvider)
		assert.Equal(t, Session{Phase: Unauthenticated}, h.machine.Snapshot())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		h := newHarness(t, nil, nil)
		h.start(t)

		_, err := h.machine.SignInWithFederated(context.Background(), models.ProviderGitHub, Strategy("iframe"))
		assert.ErrorIs(t, err, ErrUnknownStrategy)
	})
}

// ── sign-up completion ───────────────────────────────────────────────────────

func TestMachine_CompleteSignUp(t *testing.T) {
	t.Run("unlinked principal becomes linked", func(t *testing.T) {
		h := newHarness(t, &alice, nil)
		h.reconciler.EXPECT().LogIn(gomock.Any(), alice.Email).Return(models.Owner{}, service.ErrOwnerNotFound)
		h.reconciler.EXPECT().SignUp(gomock.Any(), alice).Return(aliceOwner, nil)
		h.start(t)
		require.Equal(t, Unlinked, h.machine.Snapshot().Phase)

		owner, err := h.machine.CompleteSignUp(context.Background())
		require.NoError(t, err)
		assert.Equal(t, aliceOwner, owner)

		want := Session{Principal: &alice, Phase: Linked, Owner: &aliceOwner}
		if diff := cmp.Diff(want, h.machine.Snapshot()); diff != "" {
			t.Errorf("session mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicate owner keeps the session unlinked", func(t *testing.T) {
		h := newHarness(t, &alice, nil)
		h.reconciler.EXPECT().LogIn(gomock.Any(), alice.Email).Return(models.Owner{}, service.ErrOwnerNotFound)
		h.reconciler.EXPECT().SignUp(gomock.Any(), alice).Return(models.Owner{}, service.ErrDuplicateOwner)
		h.start(t)

		_, err := h.machine.CompleteSignUp(context.Background())
		assert.ErrorIs(t, err, service.ErrDuplicateOwner)
		assert.Equal(t, Unlinked, h.machine.Snapshot().Phase)
	})

	t.Run("not allowed outside unlinked", func(t *testing.T) {
		h := newHarness(t, nil, nil)
		h.start(t)

		_, err := h.machine.CompleteSignUp(context.Background())
		assert.ErrorIs(t, err, ErrInvalidPhase)
	})
}

// ── sign-out ─────────────────────────────────────────────────────────────────

func TestMachine_SignOut(t *testing.T) {
	h := newHarness(t, &alice, nil)
	h.reconciler.EXPECT().LogIn(gomock.Any(), alice.Email).Return(aliceOwner, nil)
	h.identity.EXPECT().SignOut(gomock.Any()).DoAndReturn(func(context.Context) error {
		h.fire(nil)
		return nil
	})
	h.start(t)
	require.Equal(t, Linked, h.machine.Snapshot().Phase)

	require.NoError(t, h.machine.SignOut(context.Background()))
	assert.Equal(t, Session{Phase: Unauthenticated}, h.machine.Snapshot())

	// the listener echo of the sign-out must not change anything
	s := waitFor(t, h.machine, phaseIs(Unauthenticated))
	assert.Nil(t, s.Principal)
	assert.Nil(t, s.Owner)
}

func TestMachine_SignOut_ProviderErrorStillClearsSession(t *testing.T) {
	h := newHarness(t, &bob, nil)
	h.reconciler.EXPECT().LogIn(gomock.Any(), bob.Email).Return(bobOwner, nil)
	h.identity.EXPECT().SignOut(gomock.Any()).Return(errors.New("session file locked"))
	h.start(t)

	assert.Error(t, h.machine.SignOut(context.Background()))
	assert.Equal(t, Unauthenticated, h.machine.Snapshot().Phase)
}

// ── observers ────────────────────────────────────────────────────────────────

func TestMachine_ChangesStreamsTransitions(t *testing.T) {
	h := newHarness(t, &alice, nil)
	h.reconciler.EXPECT().LogIn(gomock.Any(), alice.Email).Return(aliceOwner, nil)
	h.start(t)

	var phases []Phase
	for len(phases) < 2 {
		select {
		case s := <-h.machine.Changes():
			phases = append(phases, s.Phase)
		case <-time.After(time.Second):
			t.Fatalf("got only %v", phases)
		}
	}
	assert.Equal(t, []Phase{Authenticated, Linked}, phases)
}

func TestMachine_SnapshotIsACopy(t *testing.T) {
	h := newHarness(t, &alice, nil)
	h.reconciler.EXPECT().LogIn(gomock.Any(), alice.Email).Return(aliceOwner, nil)
	h.start(t)

	s := h.machine.Snapshot()
	s.Principal.Email = "mallory@example.com"
	s.Owner.OwnerID = "stolen"

	again := h.machine.Snapshot()
	assert.Equal(t, alice.Email, again.Principal.Email)
	assert.Equal(t, aliceOwner.OwnerID, again.Owner.OwnerID)
}

func TestMachine_WaitHonoursContext(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.start(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.machine.Wait(ctx, phaseIs(Linked))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ── value types ──────────────────────────────────────────────────────────────

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "popup", want: StrategyPopup},
		{in: "redirect", want: StrategyRedirect},
		{in: "", wantErr: true},
		{in: "Popup", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStrategy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "auth-pending", AuthPending.String())
	assert.Equal(t, "linked", Linked.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
}

func TestSettled(t *testing.T) {
	assert.True(t, Settled(Session{Phase: Linked}))
	assert.True(t, Settled(Session{Phase: Unauthenticated}))
	assert.False(t, Settled(Session{Phase: AuthPending}))
	assert.False(t, Settled(Session{Principal: ptr(alice), Phase: Authenticated}))
}
