package bootstrap_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lightningstudio/watchbili/internal/bootstrap"
)

var errStep = errors.New("step failed")

func failingStep(context.Context) error {
	return errStep
}

func TestBootstrapRun(t *testing.T) {
	t.Parallel()
	var order []int
	step := func(i int) bootstrap.Func {
		return func(ctx context.Context) error {
			if ctx == nil {
				t.Error("nil context")
			}
			order = append(order, i)
			return nil
		}
	}
	err := bootstrap.New(bootstrap.WithTask(step(1))).Add(step(2), failingStep, step(3)).Run()
	if !errors.Is(err, errStep) {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(err.Error(), "failingStep: ") {
		t.Errorf("error lacks the step name: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v", order)
	}
}
