package shell

import (
	"io"
	"os"
	"os/signal"
)

// Relays signals to handleSignal until the returned function is called.
func initSignal(stderr io.Writer) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, handledSignals...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				logger.Info("signal received", "signal", signalName(sig))
				handleSignal(sig, stderr)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
