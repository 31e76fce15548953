// Package platform holds OS-facing helpers.
package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strconv"
)

// ErrAlreadyRunning indicates another timer window already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// Lock ports are hashed into this range so different app names rarely collide.
const (
	lockPortMin = 20000
	lockPortMax = 39999
)

// InstanceGuard holds the loopback port that marks a running timer.
type InstanceGuard struct {
	listener net.Listener
	port     int
}

// AcquireSingleInstance claims the loopback port derived from appName. When the
// port is taken the error wraps ErrAlreadyRunning and names the port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	port := lockPort(appName)
	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("%w: lock port %d held: %v", ErrAlreadyRunning, port, err)
	}
	return &InstanceGuard{listener: listener, port: port}, nil
}

// Port returns the lock port, or 0 for a nil guard.
func (g *InstanceGuard) Port() int {
	if g == nil {
		return 0
	}
	return g.port
}

// Release frees the lock. Releasing twice is harmless.
func (g *InstanceGuard) Release() error {
	if g == nil || g.listener == nil {
		return nil
	}
	err := g.listener.Close()
	g.listener = nil
	return err
}

func lockPort(appName string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(appName))
	return lockPortMin + int(h.Sum32()%uint32(lockPortMax-lockPortMin+1))
}
