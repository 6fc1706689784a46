package ui

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns SIGINT and SIGTERM into an immediate exit with
// code 1 and no stack trace. Code holding a scoped resource registers a
// cleanup that runs before the exit.
type InterruptHandler struct {
	mu       sync.Mutex
	next     int
	cleanups map[int]func()
	out      io.Writer
	exit     func(int)
	once     sync.Once
}

// NewInterruptHandler creates a handler that writes a newline to out and then
// calls exit.
func NewInterruptHandler(out io.Writer, exit func(int)) *InterruptHandler {
	return &InterruptHandler{
		cleanups: make(map[int]func()),
		out:      out,
		exit:     exit,
	}
}

// Listen starts watching for interrupt signals. The returned function stops
// watching.
func (h *InterruptHandler) Listen() func() {
	signals := make(chan os.Signal, 1)
	stop := make(chan struct{})
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-signals:
			h.Trigger()
		case <-stop:
		}
	}()
	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() {
			signal.Stop(signals)
			close(stop)
		})
	}
}

// OnInterrupt registers fn to run if the process is interrupted. The returned
// function unregisters it.
func (h *InterruptHandler) OnInterrupt(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.cleanups[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.cleanups, id)
	}
}

// Trigger runs the registered cleanups, newest first, and exits with code 1.
func (h *InterruptHandler) Trigger() {
	h.once.Do(func() {
		h.mu.Lock()
		fns := make([]func(), 0, len(h.cleanups))
		for i := h.next - 1; i >= 0; i-- {
			if fn, ok := h.cleanups[i]; ok {
				fns = append(fns, fn)
			}
		}
		h.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
		_, _ = fmt.Fprintln(h.out)
		h.exit(1)
	})
}
