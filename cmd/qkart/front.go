package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
)

var (
	_ port.Notifier = (*console)(nil)
	_ port.Router   = (*console)(nil)
)

// A console is the notifier and router of one-shot commands. Notices go to
// w; the last navigation is remembered so the command can follow it.
type console struct {
	mu   sync.Mutex
	w    io.Writer
	last domain.Navigation
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) Notify(n domain.Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] %s\n", n.Level, n.Message)
}

func (c *console) Navigate(n domain.Navigation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = n
}

func (c *console) Last() domain.Navigation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
