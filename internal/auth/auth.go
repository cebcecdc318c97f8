package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/keyring"
)

var (
	// ErrInvalidCredentials is returned for a wrong password or unknown user.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrLocked is returned while an account is locked out after repeated
	// failed logins.
	ErrLocked = errors.New("account temporarily locked")
)

type lockState struct {
	failures    int
	lockedUntil time.Time
}

// Gate enforces password checks with a per-user lockout. After
// MaxLoginAttempts consecutive failures the user is locked out for
// LoginLockoutDuration; the failure counter resets on success or when the
// lockout expires. Lockout state is in-memory only and scoped to the
// session that created the gate.
type Gate struct {
	mu    sync.Mutex
	users map[string]*lockState

	// overridable for tests
	getPassword func(username string) (string, error)
	now         func() time.Time
}

func NewGate() *Gate {
	return &Gate{
		users:       make(map[string]*lockState),
		getPassword: keyring.GetPassword,
		now:         time.Now,
	}
}

// Login verifies the password for username. Returns ErrLocked while the
// user is locked out and ErrInvalidCredentials on a mismatch or unknown
// user.
func (g *Gate) Login(username, password string) error {
	if username == "" {
		return ErrInvalidCredentials
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.state(username)
	now := g.now()
	if now.Before(state.lockedUntil) {
		return fmt.Errorf("%w: try again in %s", ErrLocked, remaining(state, now))
	}

	stored, err := g.getPassword(username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			g.recordFailure(state, now)
			return ErrInvalidCredentials
		}
		return err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		g.recordFailure(state, now)
		return ErrInvalidCredentials
	}

	state.failures = 0
	state.lockedUntil = time.Time{}
	return nil
}

// ChangePassword verifies the current password before storing the new one.
// The verification path shares the lockout with Login.
func (g *Gate) ChangePassword(username, current, next string) error {
	if err := g.Login(username, current); err != nil {
		return err
	}
	return keyring.SetPassword(username, next)
}

// RemainingLockout reports how much lockout time is left for username as of
// now. Zero means the user may attempt a login.
func (g *Gate) RemainingLockout(username string, now time.Time) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return remaining(g.state(username), now)
}

// FailedAttempts returns the current consecutive-failure count for username.
func (g *Gate) FailedAttempts(username string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state(username).failures
}

// Register stores the initial password for a username. It does not consult
// the lockout since no credential check is involved.
func Register(username, password string) error {
	return keyring.SetPassword(username, password)
}

func (g *Gate) state(username string) *lockState {
	state, ok := g.users[username]
	if !ok {
		state = &lockState{}
		g.users[username] = state
	}
	return state
}

func (g *Gate) recordFailure(state *lockState, now time.Time) {
	// A failure after expiry starts a fresh count
	if !state.lockedUntil.IsZero() && !now.Before(state.lockedUntil) {
		state.failures = 0
		state.lockedUntil = time.Time{}
	}

	state.failures++
	if state.failures >= constants.MaxLoginAttempts {
		state.lockedUntil = now.Add(constants.LoginLockoutDuration)
	}
}

func remaining(state *lockState, now time.Time) time.Duration {
	if now.Before(state.lockedUntil) {
		return state.lockedUntil.Sub(now).Round(time.Second)
	}
	return 0
}
