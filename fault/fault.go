// Copyright 2021 The Blifnet Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License file.

// Package fault maintains the process-wide stack of fault handlers to
// which readers deliver diagnostics.  The stack always starts with a
// default handler that prints to standard output.
package fault

import (
	"fmt"
	"sync"
)

// Handler receives one formatted fault message.
type Handler func(msg string)

var (
	mu         sync.Mutex
	handlers   []Handler
	defaultTop bool // true while handlers is exactly [default]
)

func init() {
	handlers = []Handler{defaultHandler}
	defaultTop = true
}

func defaultHandler(msg string) {
	fmt.Printf("AbcMini error: %s\n", msg)
}

// Install registers h.  If only the default handler is present it is
// replaced, otherwise h is appended after the existing handlers.
func Install(h Handler) {
	mu.Lock()
	defer mu.Unlock()
	if defaultTop && len(handlers) == 1 {
		handlers[0] = h
		defaultTop = false
		return
	}
	handlers = append(handlers, h)
}

// Reset drops all handlers and reinstalls the default.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	handlers = []Handler{defaultHandler}
	defaultTop = true
}

// Report delivers msg to every registered handler, in order.
func Report(msg string) {
	mu.Lock()
	hs := make([]Handler, len(handlers))
	copy(hs, handlers)
	mu.Unlock()
	for _, h := range hs {
		h(msg)
	}
}

// Len returns the number of registered handlers.
func Len() int {
	mu.Lock()
	defer mu.Unlock()
	return len(handlers)
}

// IsDefault reports whether the stack holds exactly the default
// handler.
func IsDefault() bool {
	mu.Lock()
	defer mu.Unlock()
	return defaultTop && len(handlers) == 1
}
