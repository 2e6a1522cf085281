// Package controller holds the page state machines behind the story list and
// story detail screens. Controllers are mutated only from the UI update loop;
// fetches run elsewhere and report back with the Ticket they were issued.
package controller

import "context"

// Ticket identifies one issued fetch. A ticket is current until its tracker
// issues a newer one or is reset.
type Ticket struct {
	Gen uint64
	ctx context.Context
}

// Context returns the context the fetch must run under. It is cancelled when
// the ticket is superseded.
func (t Ticket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Tracker issues generation-numbered tickets and cancels superseded ones
type Tracker struct {
	gen    uint64
	cancel context.CancelFunc
}

// Next cancels the outstanding ticket, if any, and issues a new one derived
// from parent.
func (t *Tracker) Next(parent context.Context) Ticket {
	t.release()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	t.gen++
	t.cancel = cancel
	return Ticket{Gen: t.gen, ctx: ctx}
}

// Current reports whether tk is the most recently issued ticket
func (t *Tracker) Current(tk Ticket) bool {
	return tk.Gen != 0 && tk.Gen == t.gen
}

// Finish reports whether tk is current and, if so, releases its context
func (t *Tracker) Finish(tk Ticket) bool {
	if !t.Current(tk) {
		return false
	}
	t.release()
	return true
}

// Reset cancels the outstanding ticket and invalidates every issued ticket
func (t *Tracker) Reset() {
	t.release()
	t.gen++
}

// Gen returns the current generation
func (t *Tracker) Gen() uint64 {
	return t.gen
}

func (t *Tracker) release() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
