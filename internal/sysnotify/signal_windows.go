package sysnotify

import (
	"os"
	"syscall"
)

// No user signals here, so reload tasks only run through Run.
var signalTypes = map[os.Signal]NotifyType{
	syscall.SIGHUP:  NotifyTypeEXIT,
	syscall.SIGINT:  NotifyTypeEXIT,
	syscall.SIGQUIT: NotifyTypeEXIT,
	syscall.SIGTERM: NotifyTypeEXIT,
}
