//go:build linux

package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mutterIdleService = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath    = "/org/gnome/Mutter/IdleMonitor/Core"
	mutterIdleMethod  = "org.gnome.Mutter.IdleMonitor.GetIdletime"
)

// mutterIdleProvider asks GNOME's idle monitor over the session bus. It works on Wayland.
type mutterIdleProvider struct {
	conn *dbus.Conn
}

// xprintidleProvider shells out to xprintidle on X11 sessions.
type xprintidleProvider struct {
	path string
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	if provider, ok := newMutterIdleProvider(); ok {
		return provider
	}
	if path, err := exec.LookPath("xprintidle"); err == nil {
		return &xprintidleProvider{path: path}
	}
	return unsupportedIdleProvider{}
}

func newMutterIdleProvider() (*mutterIdleProvider, bool) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, false
	}
	provider := &mutterIdleProvider{conn: conn}
	if _, err := provider.IdleDuration(); err != nil {
		_ = conn.Close()
		return nil, false
	}
	return provider, true
}

func (provider *mutterIdleProvider) IdleDuration() (time.Duration, error) {
	var idleMillis uint64
	call := provider.conn.Object(mutterIdleService, dbus.ObjectPath(mutterIdlePath)).Call(mutterIdleMethod, 0)
	if err := call.Store(&idleMillis); err != nil {
		return 0, fmt.Errorf("mutter idle monitor: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(string(output)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	return time.Duration(max(idleMillis, 0)) * time.Millisecond, nil
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}
