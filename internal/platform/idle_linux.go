package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mutterIdleService = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath    = "/org/gnome/Mutter/IdleMonitor/Core"
	mutterIdleMethod  = mutterIdleService + ".GetIdletime"
)

type idleProvider struct {
	source string
	query  func() (time.Duration, error)
}

// newIdleProvider prefers the GNOME idle monitor, which also works under
// Wayland, and falls back to xprintidle on X11 sessions.
func newIdleProvider() IdleProvider {
	if conn, err := dbus.SessionBus(); err == nil {
		query := mutterIdleQuery(conn)
		if _, err := query(); err == nil {
			return &idleProvider{source: "mutter", query: query}
		}
	}

	// xprintidle only sees X11 clients.
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return unsupportedIdleProvider{}
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{source: "xprintidle", query: xprintidleQuery(path)}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	idle, err := provider.query()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", provider.source, err)
	}
	return idle, nil
}

func mutterIdleQuery(conn *dbus.Conn) func() (time.Duration, error) {
	monitor := conn.Object(mutterIdleService, dbus.ObjectPath(mutterIdlePath))
	return func() (time.Duration, error) {
		var idleMillis uint64
		if err := monitor.Call(mutterIdleMethod, 0).Store(&idleMillis); err != nil {
			return 0, err
		}
		return time.Duration(idleMillis) * time.Millisecond, nil
	}
}

func xprintidleQuery(path string) func() (time.Duration, error) {
	return func() (time.Duration, error) {
		output, err := exec.Command(path).Output()
		if err != nil {
			return 0, err
		}
		return parseIdleMillis(string(output))
	}
}

func parseIdleMillis(output string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(output), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
