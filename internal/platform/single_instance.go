package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"os/user"
)

// ErrAlreadyRunning indicates another timer of the same user is open.
var ErrAlreadyRunning = errors.New("timer already running")

const (
	lockPortMin = 20000
	lockPortMax = 39999
)

// InstanceGuard keeps a localhost port bound while the desktop timer runs.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance binds a localhost port derived from appName and the
// current user, so each user on a machine can run one timer.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	return acquire(lockKey(appName, currentUser()))
}

func acquire(key string) (*InstanceGuard, error) {
	address := net.JoinHostPort("127.0.0.1", fmt.Sprint(lockPort(key)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("lock %s on %s: %w", key, address, ErrAlreadyRunning)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Release unbinds the port. Calling it twice is harmless.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	listener := guard.listener
	guard.listener = nil
	if err := listener.Close(); err != nil {
		return fmt.Errorf("release %s: %w", guard.address, err)
	}
	return nil
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func currentUser() string {
	current, err := user.Current()
	if err != nil {
		return ""
	}
	return current.Uid
}

func lockKey(appName, uid string) string {
	if uid == "" {
		return appName
	}
	return appName + "@" + uid
}

func lockPort(key string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	return lockPortMin + int(hash.Sum32()%uint32(lockPortMax-lockPortMin+1))
}
