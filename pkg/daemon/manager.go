// Package daemon keeps track of the resident "neno serve" process of a user:
// an exclusive lock so only one instance polls the reminders, and a state
// file other commands read to find the running API.
package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/papercomputeco/neno/pkg/utils"
)

const (
	stateFileName = "serve.json"
	lockFileName  = "serve.lock"
	stateVersion  = 1
)

// ErrAlreadyRunning is returned by Lock when another process holds the lock.
var ErrAlreadyRunning = errors.New("neno is already running for this user")

type State struct {
	Version   int       `json:"version"`
	PID       int       `json:"pid"`
	User      string    `json:"user"`
	APIURL    string    `json:"api_url,omitempty"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Manager struct {
	Dir       string
	StatePath string
	LockPath  string
}

type Lock struct {
	file *os.File
}

// NewManager keeps its files in dir, normally the users/<slug> directory.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("daemon directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating neno dir: %w", err)
	}

	return &Manager{
		Dir:       dir,
		StatePath: filepath.Join(dir, stateFileName),
		LockPath:  filepath.Join(dir, lockFileName),
	}, nil
}

// Lock takes the instance lock without waiting.
func (m *Manager) Lock() (*Lock, error) {
	file, err := os.OpenFile(m.LockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("locking serve file: %w", err)
	}

	return &Lock{file: file}, nil
}

func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return fmt.Errorf("unlocking serve file: %w", err)
	}
	return l.file.Close()
}

// LoadState returns nil without error when no instance recorded its state.
func (m *Manager) LoadState() (*State, error) {
	data, err := os.ReadFile(m.StatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading serve state: %w", err)
	}

	state := &State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing serve state: %w", err)
	}

	return state, nil
}

func (m *Manager) SaveState(state *State) error {
	if state == nil {
		return errors.New("cannot save nil state")
	}
	if state.Version == 0 {
		state.Version = stateVersion
	}
	state.UpdatedAt = time.Now()
	if state.StartedAt.IsZero() {
		state.StartedAt = state.UpdatedAt
	}

	if err := utils.WriteJSONFile(m.StatePath, state); err != nil {
		return fmt.Errorf("persisting serve state: %w", err)
	}
	return nil
}

func (m *Manager) ClearState() error {
	if err := os.Remove(m.StatePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing serve state: %w", err)
	}
	return nil
}

// Running reports whether another process currently holds the lock.
func (m *Manager) Running() bool {
	lock, err := m.Lock()
	if err != nil {
		return errors.Is(err, ErrAlreadyRunning)
	}
	_ = lock.Release()
	return false
}
