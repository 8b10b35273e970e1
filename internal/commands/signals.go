package commands

import (
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
)

// ignoreFirstInterrupt absorbs the first interrupt when stdin is a pipe, so the
// printer keeps draining what the upstream process writes while it shuts down.
// A second interrupt terminates as usual. The returned func releases the handler.
func ignoreFirstInterrupt(in io.Reader) func() {
	if !isPiped(in) {
		return func() {}
	}

	interrupts := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(interrupts, os.Interrupt)

	go func() {
		select {
		case <-interrupts:
		case <-done:
		}
		signal.Reset(os.Interrupt)
	}()

	return func() {
		close(done)
	}
}

// isPiped reports whether in is a file that is neither a terminal nor a regular file.
func isPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return !info.Mode().IsRegular()
}
