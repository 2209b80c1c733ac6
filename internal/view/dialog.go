// Package view implements the role-gated dashboard flow: the session gate,
// the management and read-only listing views, and the delete confirmation
// dialog. Each component is a small state machine over an injected
// gateway.Gateway; nothing here touches the store directly.
package view

import (
	"sync"
	"time"
)

// DefaultTransitionDuration is the fixed delay of the dialog's enter and
// exit transitions.
const DefaultTransitionDuration = 300 * time.Millisecond

// DialogState enumerates the dialog's lifecycle states.
type DialogState int

const (
	// DialogClosed means the dialog is unmounted.
	DialogClosed DialogState = iota
	// DialogOpening means the dialog is mounted but the enter transition
	// has not completed yet.
	DialogOpening
	// DialogOpen means the enter transition has completed.
	DialogOpen
)

func (s DialogState) String() string {
	switch s {
	case DialogOpening:
		return "opening"
	case DialogOpen:
		return "open"
	default:
		return "closed"
	}
}

// ConfirmDialog asks for confirmation before a destructive action. It owns
// no business logic: Confirm invokes the caller's callback immediately and
// leaves the outcome (and closing the dialog) to the caller. Both the enter
// and exit transitions run on cancellable timers tied to the dialog itself,
// so a superseding open/close request or teardown never leaves a stale timer
// to corrupt a newer state.
type ConfirmDialog struct {
	mu sync.Mutex

	state       DialogState
	subjectName string
	exiting     bool

	transition time.Duration
	enterTimer *time.Timer
	exitTimer  *time.Timer

	onConfirm func()
	onClose   func()
}

// NewConfirmDialog creates a closed dialog. A non-positive transition falls
// back to DefaultTransitionDuration.
func NewConfirmDialog(transition time.Duration, onConfirm, onClose func()) *ConfirmDialog {
	if transition <= 0 {
		transition = DefaultTransitionDuration
	}
	return &ConfirmDialog{
		transition: transition,
		onConfirm:  onConfirm,
		onClose:    onClose,
	}
}

// Open mounts the dialog around the named subject. While the enter timer is
// pending the dialog reports DialogOpening; once it fires the dialog is fully
// open. Opening during an exit cancels the exit without invoking the close
// callback.
func (d *ConfirmDialog) Open(subjectName string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimersLocked()
	d.exiting = false
	d.subjectName = subjectName
	d.state = DialogOpening

	d.enterTimer = time.AfterFunc(d.transition, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.state == DialogOpening && !d.exiting {
			d.state = DialogOpen
		}
	})
}

// Close begins the exit transition. The dialog visually starts leaving at
// once but stays mounted until the exit timer fires, at which point it
// returns to DialogClosed and invokes the close callback. Closing an already
// closed dialog is a no-op.
func (d *ConfirmDialog) Close() {
	d.mu.Lock()

	if d.state == DialogClosed || d.exiting {
		d.mu.Unlock()
		return
	}

	d.stopTimersLocked()
	d.exiting = true

	d.exitTimer = time.AfterFunc(d.transition, func() {
		d.mu.Lock()
		if !d.exiting {
			d.mu.Unlock()
			return
		}
		d.state = DialogClosed
		d.exiting = false
		d.subjectName = ""
		onClose := d.onClose
		d.mu.Unlock()

		if onClose != nil {
			onClose()
		}
	})

	d.mu.Unlock()
}

// Confirm invokes the confirm callback immediately. Whether confirmation
// succeeded, and closing the dialog afterwards, is the caller's
// responsibility.
func (d *ConfirmDialog) Confirm() {
	d.mu.Lock()
	open := d.state != DialogClosed
	onConfirm := d.onConfirm
	d.mu.Unlock()

	if open && onConfirm != nil {
		onConfirm()
	}
}

// Dismiss tears the dialog down without transitions or callbacks: pending
// timers are cancelled and the state returns to closed. Used on view
// teardown.
func (d *ConfirmDialog) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimersLocked()
	d.state = DialogClosed
	d.exiting = false
	d.subjectName = ""
}

// State reports the current lifecycle state.
func (d *ConfirmDialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Exiting reports whether the exit transition is in progress.
func (d *ConfirmDialog) Exiting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.exiting
}

// SubjectName returns the display name the confirmation prompt should
// reference.
func (d *ConfirmDialog) SubjectName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.subjectName
}

func (d *ConfirmDialog) stopTimersLocked() {
	if d.enterTimer != nil {
		d.enterTimer.Stop()
		d.enterTimer = nil
	}
	if d.exitTimer != nil {
		d.exitTimer.Stop()
		d.exitTimer = nil
	}
}
