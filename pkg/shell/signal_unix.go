//go:build !windows && !plan9

package shell

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"syscall"

	"golang.org/x/sys/unix"
)

var handledSignals = []os.Signal{syscall.SIGHUP, syscall.SIGTERM, syscall.SIGUSR1}

func signalName(sig os.Signal) string {
	return unix.SignalName(sig.(syscall.Signal))
}

func handleSignal(sig os.Signal, stderr io.Writer) {
	switch sig {
	case syscall.SIGHUP, syscall.SIGTERM:
		os.Exit(0)
	case syscall.SIGUSR1:
		buf := make([]byte, 1<<20)
		fmt.Fprintf(stderr, "%s", buf[:runtime.Stack(buf, true)])
	}
}
