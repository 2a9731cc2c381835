package bootstrap

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

type Conf func(*Bootstrap)

func WithContext(ctx context.Context) Conf {
	return func(b *Bootstrap) {
		b.ctx = ctx
	}
}

func WithTask(f ...Func) Conf {
	return func(b *Bootstrap) {
		b.task = append(b.task, f...)
	}
}

// Bootstrap runs its tasks in order and stops at the first error.
type Bootstrap struct {
	ctx  context.Context
	task []Func
}

func New(conf ...Conf) *Bootstrap {
	b := &Bootstrap{}
	for _, c := range conf {
		c(b)
	}
	if b.ctx == nil {
		b.ctx = context.Background()
	}
	return b
}

type Func func(context.Context) error

func (b *Bootstrap) Add(f ...Func) *Bootstrap {
	b.task = append(b.task, f...)
	return b
}

func (b *Bootstrap) Run() error {
	for _, f := range b.task {
		if err := f(b.ctx); err != nil {
			return fmt.Errorf("%s: %w", funcName(f), err)
		}
	}
	return nil
}

func funcName(f Func) string {
	name := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
	return name[strings.LastIndex(name, ".")+1:]
}
