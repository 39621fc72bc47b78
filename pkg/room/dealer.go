package room

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"uno-server/pkg/uno"
)

// Update is sent to subscribers after every change to the game
type Update struct {
	Game *uno.PublicSnapshot `json:"game"`
	Log  []*LogMessage       `json:"log"`
}

// Dealer is responsible for a single game
// Every command runs inside the dealer's run loop, one at a time, so the game itself needs no locking.
type Dealer struct {
	pitBoss *PitBoss
	game    *uno.Game
	name    string
	logger  logrus.FieldLogger

	// finished is set to 1 once the game has a winner
	finished int32

	// logMessages must only be accessed from the run loop
	logMessages []*LogMessage

	lock        sync.RWMutex
	subscribers map[chan *Update]bool
	closed      bool

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called while the pit boss holds its lock, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, game *uno.Game) *Dealer {
	logger := logrus.WithFields(logrus.Fields{
		"uuid": game.ID,
		"name": game.Name,
	})
	game.SetLogger(logger)

	return &Dealer{
		pitBoss:       pitBoss,
		game:          game,
		name:          game.Name,
		logger:        logger,
		logMessages:   make([]*LogMessage, 0),
		subscribers:   make(map[chan *Update]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

func (d *Dealer) isFinished() bool {
	return atomic.LoadInt32(&d.finished) == 1
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift stops the run loop and closes every subscription
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)

		d.lock.Lock()
		d.closed = true
		for ch := range d.subscribers {
			delete(d.subscribers, ch)
			close(ch)
		}
		d.lock.Unlock()
	})
}

// exec runs fn inside the run loop and waits for it to complete
// If ctx is done before fn is picked up, fn never runs. Once fn is running it always runs to completion,
// even if the caller stopped waiting.
func (d *Dealer) exec(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	job := func() {
		done <- fn()
	}

	select {
	case d.execInRunLoop <- job:
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe returns a channel that receives an update after every change, starting with the current state
// The returned function must be called to unsubscribe
func (d *Dealer) Subscribe(ctx context.Context) (<-chan *Update, func(), error) {
	ch := make(chan *Update, 16)

	// gone is set once the caller no longer wants the channel, guarded by d.lock
	gone := false
	unsubscribe := func() {
		d.lock.Lock()
		defer d.lock.Unlock()

		gone = true
		if d.subscribers[ch] {
			delete(d.subscribers, ch)
			close(ch)
		}
	}

	err := d.exec(ctx, func() error {
		update := d.update()

		d.lock.Lock()
		defer d.lock.Unlock()

		// the caller stopped waiting while the job was queued
		if gone || d.closed {
			return nil
		}

		d.subscribers[ch] = true
		ch <- update
		return nil
	})

	if err != nil {
		unsubscribe()
		return nil, nil, err
	}

	return ch, unsubscribe, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) update() *Update {
	return &Update{
		Game: d.game.PublicSnapshot(),
		Log:  append([]*LogMessage{}, d.logMessages...),
	}
}

// stateChanged sends an update to every subscriber
// A subscriber that is not keeping up misses the update
// NOTE: must only be called from the run loop
func (d *Dealer) stateChanged(messages ...*LogMessage) {
	d.addLogMessages(messages...)
	update := d.update()

	d.lock.RLock()
	defer d.lock.RUnlock()

	for ch := range d.subscribers {
		select {
		case ch <- update:
		default:
			d.logger.Warn("subscriber is not keeping up, dropping update")
		}
	}
}
