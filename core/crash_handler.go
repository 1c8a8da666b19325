package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var crashHandler atomic.Pointer[func(r any)]

// SetCrashHandler installs the handler invoked by Go on panic
// The host uses it to restore the terminal before reporting
func SetCrashHandler(fn func(r any)) {
	crashHandler.Store(&fn)
}

// HandleCrash runs the installed crash handler, or prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if fn := crashHandler.Load(); fn != nil && *fn != nil {
		(*fn)(r)
		return
	}
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
