//go:build !windows
// +build !windows

package sysnotify

import (
	"os"
	"syscall"
)

var signalTypes = map[os.Signal]NotifyType{
	syscall.SIGHUP:  NotifyTypeEXIT,
	syscall.SIGINT:  NotifyTypeEXIT,
	syscall.SIGQUIT: NotifyTypeEXIT,
	syscall.SIGTERM: NotifyTypeEXIT,
	// kill -USR1 re-runs the identity refresh without restarting
	syscall.SIGUSR1: NotifyTypeRELOAD,
	syscall.SIGUSR2: NotifyTypeRELOAD,
}
