// Package systemd integrates with the service manager on hosts that run
// the daemon as a unit. Calls are no-ops outside systemd.
package systemd

import (
	"github.com/coreos/go-systemd/v22/daemon"
)

// NotifyReady signals the service manager that startup is complete.
func NotifyReady() {
	// SdNotify returns false when NOTIFY_SOCKET is unset, which is fine
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
}

// NotifyStopping signals the service manager that shutdown has begun.
func NotifyStopping() {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
}
