package bootstrap

import (
	"context"

	"github.com/lightningstudio/watchbili/internal/sysnotify"
)

func InitSysNotify(ctx context.Context) error {
	sysnotify.Init()
	return nil
}
