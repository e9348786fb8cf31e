package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
)

var (
	_ port.Notifier = (*Bridge)(nil)
	_ port.Router   = (*Bridge)(nil)
)

type noticeMsg domain.Notice

type navigateMsg domain.Navigation

// A Bridge turns storefront notices and navigations into program messages.
// Messages sent before a program is bound are queued and flushed by Bind.
type Bridge struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

func NewBridge() *Bridge {
	return new(Bridge)
}

// Bind delivers every following message through send, usually
// (*tea.Program).Send.
func (b *Bridge) Bind(send func(tea.Msg)) {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.send = send
	b.mu.Unlock()

	for _, msg := range pending {
		send(msg)
	}
}

func (b *Bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	if send == nil {
		b.pending = append(b.pending, msg)
	}
	b.mu.Unlock()

	if send != nil {
		send(msg)
	}
}

func (b *Bridge) Notify(n domain.Notice) {
	b.Send(noticeMsg(n))
}

func (b *Bridge) Navigate(n domain.Navigation) {
	b.Send(navigateMsg(n))
}
