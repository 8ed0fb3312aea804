package goroutine

import (
	"context"
	"runtime/debug"
	"sync"
)

// Logger интерфейс для логирования ошибок
type Logger interface {
	Errorf(format string, args ...interface{})
}

// Runner запускает фоновые задачи с обработкой panic и ждёт их завершения.
type Runner struct {
	logger Logger
	wg     sync.WaitGroup
}

// NewRunner создаёт runner. Паники задач пишутся в logger.
func NewRunner(logger Logger) *Runner {
	return &Runner{logger: logger}
}

// Go запускает задачу name в отдельной горутине.
func (r *Runner) Go(name string, fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.recover(name)
		fn()
	}()
}

// GoWithContext запускает задачу, которая должна завершиться по отмене ctx.
func (r *Runner) GoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	r.Go(name, func() { fn(ctx) })
}

// Wait ждёт завершения всех задач.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) recover(name string) {
	if v := recover(); v != nil {
		r.logger.Errorf("panic в задаче %s: %v\nStack trace:\n%s", name, v, debug.Stack())
	}
}
