package sysnotify

import (
	"errors"
	"testing"
)

func TestRunOrder(t *testing.T) {
	t.Parallel()
	var sn SysNotify
	var order []string
	add := func(priority int, name string) {
		err := sn.RegisterSysNotifyTask(priority, NewSysNotifyTask(name, NotifyTypeEXIT, func() error {
			order = append(order, name)
			return nil
		}))
		if err != nil {
			t.Fatal(err)
		}
	}
	add(2, "db")
	add(0, "server")
	add(1, "store")
	sn.Run(NotifyTypeEXIT)
	if len(order) != 3 || order[0] != "server" || order[1] != "store" || order[2] != "db" {
		t.Errorf("order = %v", order)
	}
	sn.Run(NotifyTypeEXIT)
	if len(order) != 3 {
		t.Errorf("exit tasks ran twice: %v", order)
	}
}

func TestReloadRepeats(t *testing.T) {
	t.Parallel()
	var sn SysNotify
	n := 0
	_ = sn.RegisterSysNotifyTask(0, NewSysNotifyTask("refresh", NotifyTypeRELOAD, func() error {
		n++
		return errors.New("failures are logged")
	}))
	_ = sn.RegisterSysNotifyTask(1, NewSysNotifyTask("panics", NotifyTypeRELOAD, func() error {
		panic("recovered")
	}))
	sn.Run(NotifyTypeRELOAD)
	sn.Run(NotifyTypeRELOAD)
	if n != 2 {
		t.Errorf("reload ran %d times, want 2", n)
	}
}

func TestRegisterInvalid(t *testing.T) {
	t.Parallel()
	var sn SysNotify
	if err := sn.RegisterSysNotifyTask(0, nil); err == nil {
		t.Error("nil task accepted")
	}
	if err := sn.RegisterSysNotifyTask(0, NewSysNotifyTask("x", 0, func() error { return nil })); err == nil {
		t.Error("zero notify type accepted")
	}
}
