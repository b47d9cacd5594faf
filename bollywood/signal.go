package bollywood

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// signalThread is the single os/signal consumer for a System (spec.md
// §4.6). Go's os/signal already funnels every incoming signal through one
// internal dispatcher goroutine, which is the same "one thread has every
// signal unblocked" shape cacti.c builds by hand with sigprocmask/
// pthread_sigmask across every other worker thread — so no explicit
// masking is needed here, signal.Notify gives it for free.
type signalThread struct {
	sys *System
	ch  chan os.Signal
}

func newSignalThread(sys *System) *signalThread {
	return &signalThread{
		sys: sys,
		ch:  make(chan os.Signal, 1),
	}
}

func (t *signalThread) start() {
	signal.Notify(t.ch, os.Interrupt, syscall.SIGTERM)
	go t.run()
}

func (t *signalThread) stop() {
	signal.Stop(t.ch)
	close(t.ch)
}

func (t *signalThread) run() {
	sig, ok := <-t.ch
	if !ok {
		return
	}
	t.sys.log.Info("bollywood: signal received, marking system for shutdown", zap.String("signal", sig.String()))
	t.sys.beginShutdown()
	t.sys.Join(context.Background())
}
