//go:build !windows
// +build !windows

package sysnotify

import (
	"os"
	"syscall"
	"testing"
)

func TestParseSysNotifyType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		sig  os.Signal
		want NotifyType
	}{
		{syscall.SIGHUP, NotifyTypeEXIT},
		{syscall.SIGINT, NotifyTypeEXIT},
		{syscall.SIGQUIT, NotifyTypeEXIT},
		{syscall.SIGTERM, NotifyTypeEXIT},
		{syscall.SIGUSR1, NotifyTypeRELOAD},
		{syscall.SIGUSR2, NotifyTypeRELOAD},
		{syscall.SIGWINCH, 0},
	}
	for _, tt := range tests {
		if got := parseSysNotifyType(tt.sig); got != tt.want {
			t.Errorf("parseSysNotifyType(%v) = %d, want %d", tt.sig, got, tt.want)
		}
	}
}

func TestWaitCbkDispatch(t *testing.T) {
	t.Parallel()
	var sn SysNotify
	var ran []string
	for _, task := range []*Task{
		NewSysNotifyTask("refresh", NotifyTypeRELOAD, func() error { ran = append(ran, "refresh"); return nil }),
		NewSysNotifyTask("close", NotifyTypeEXIT, func() error { ran = append(ran, "close"); return nil }),
	} {
		if err := sn.RegisterSysNotifyTask(0, task); err != nil {
			t.Fatal(err)
		}
	}
	sn.c = make(chan os.Signal, 4)
	sn.c <- syscall.SIGUSR1
	sn.c <- syscall.SIGWINCH
	sn.c <- syscall.SIGUSR2
	sn.c <- syscall.SIGTERM
	sn.WaitCbk()
	if len(ran) != 3 || ran[0] != "refresh" || ran[1] != "refresh" || ran[2] != "close" {
		t.Errorf("ran = %v", ran)
	}
}
