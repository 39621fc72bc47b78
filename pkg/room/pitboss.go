package room

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"uno-server/internal/rng"
	"uno-server/pkg/deck"
	"uno-server/pkg/uno"
)

const maxNameLength = 40

// archiveTimeout is how long a finished game may take to be archived
const archiveTimeout = time.Second * 10

// defaultFinishedTTL is how long a finished game is kept so subscribers see the final update
const defaultFinishedTTL = time.Minute

// Archiver stores finished games
type Archiver interface {
	ArchiveGame(ctx context.Context, snapshot *uno.Snapshot) error
}

// Options are used to configure the pit boss
type Options struct {
	// Generator shuffles every deck, defaults to rng.Default()
	Generator rng.Generator

	// CardsPerPlayer defaults to uno.CardsPerPlayer
	CardsPerPlayer int

	// MaxGames is the number of games that can be held at once, zero means no limit
	MaxGames int

	// Archiver is optional
	Archiver Archiver

	// FinishedTTL is how long a finished game is kept before it is removed, defaults to one minute
	FinishedTTL time.Duration
}

// PitBoss is responsible for dispatching commands to the dealer of each game
type PitBoss struct {
	lock    sync.RWMutex
	dealers map[string]*Dealer

	generator      rng.Generator
	cardsPerPlayer int
	maxGames       int
	archiver       Archiver
	finishedTTL    time.Duration

	archiving sync.WaitGroup
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts Options) *PitBoss {
	if opts.Generator == nil {
		opts.Generator = rng.Default()
	}

	if opts.CardsPerPlayer <= 0 {
		opts.CardsPerPlayer = uno.CardsPerPlayer
	}

	if opts.FinishedTTL <= 0 {
		opts.FinishedTTL = defaultFinishedTTL
	}

	return &PitBoss{
		dealers:        make(map[string]*Dealer),
		generator:      opts.Generator,
		cardsPerPlayer: opts.CardsPerPlayer,
		maxGames:       opts.MaxGames,
		archiver:       opts.Archiver,
		finishedTTL:    opts.FinishedTTL,
	}
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLength {
		return ErrInvalidName
	}

	return nil
}

// CreateGame creates a pending game and the dealer that runs it
func (p *PitBoss) CreateGame(ctx context.Context, name string) (*uno.Snapshot, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	p.lock.Lock()
	if _, found := p.dealers[name]; found {
		p.lock.Unlock()
		return nil, ErrNameTaken
	}

	if p.maxGames > 0 && p.activeGames() >= p.maxGames {
		p.lock.Unlock()
		return nil, ErrTooManyGames
	}

	dealer := NewDealer(p, uno.NewGame(name))
	dealer.StartShift()
	p.dealers[name] = dealer
	p.lock.Unlock()

	dealer.logger.Info("game created")
	return dealer.Snapshot(ctx)
}

// NOTE: the caller must hold the lock
func (p *PitBoss) activeGames() int {
	active := 0
	for _, dealer := range p.dealers {
		if !dealer.isFinished() {
			active++
		}
	}

	return active
}

// Dealer returns the dealer of the game
func (p *PitBoss) Dealer(name string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, found := p.dealers[name]
	if !found {
		return nil, ErrGameNotFound
	}

	return dealer, nil
}

// GameCount returns the number of games held
func (p *PitBoss) GameCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// RemoveGame ends the dealer's shift and forgets the game
func (p *PitBoss) RemoveGame(name string) error {
	p.lock.Lock()
	dealer, found := p.dealers[name]
	if found {
		delete(p.dealers, name)
	}
	p.lock.Unlock()

	if !found {
		return ErrGameNotFound
	}

	dealer.EndShift()
	dealer.logger.Info("game removed")
	return nil
}

// JoinGame adds a player to a pending game
func (p *PitBoss) JoinGame(ctx context.Context, name, playerName string) (*uno.PlayerSnapshot, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, err
	}

	return dealer.JoinGame(ctx, playerName)
}

// StartGame starts a pending game
func (p *PitBoss) StartGame(ctx context.Context, name string) (*uno.Snapshot, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, err
	}

	return dealer.StartGame(ctx)
}

// DrawCards draws up to n cards for the player
func (p *PitBoss) DrawCards(ctx context.Context, name, playerName string, n int) ([]deck.Card, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, err
	}

	return dealer.DrawCards(ctx, playerName, n)
}

// PlayCard plays a card from the player's hand
func (p *PitBoss) PlayCard(ctx context.Context, name, playerName string, cardIndex int) (bool, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return false, err
	}

	return dealer.PlayCard(ctx, playerName, cardIndex)
}

// PlayMatchingCard plays the first card in the player's hand equal to card
func (p *PitBoss) PlayMatchingCard(ctx context.Context, name, playerName string, card deck.Card) (bool, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return false, err
	}

	return dealer.PlayMatchingCard(ctx, playerName, card)
}

// PassTurn ends the player's turn without playing
func (p *PitBoss) PassTurn(ctx context.Context, name, playerName string) error {
	dealer, err := p.Dealer(name)
	if err != nil {
		return err
	}

	return dealer.PassTurn(ctx, playerName)
}

// AdvanceRoundIfFinished deals the next round, or ends the game if someone won
func (p *PitBoss) AdvanceRoundIfFinished(ctx context.Context, name string) (*uno.PlayerSnapshot, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, err
	}

	return dealer.AdvanceRoundIfFinished(ctx)
}

// Snapshot returns the full state of the game
func (p *PitBoss) Snapshot(ctx context.Context, name string) (*uno.Snapshot, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, err
	}

	return dealer.Snapshot(ctx)
}

// PublicSnapshot returns the public state of the game
func (p *PitBoss) PublicSnapshot(ctx context.Context, name string) (*uno.PublicSnapshot, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, err
	}

	return dealer.PublicSnapshot(ctx)
}

// PlayerHand returns the player's hand
func (p *PitBoss) PlayerHand(ctx context.Context, name, playerName string) (*uno.PlayerSnapshot, error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, err
	}

	return dealer.PlayerHand(ctx, playerName)
}

// Subscribe subscribes to the updates of a game
func (p *PitBoss) Subscribe(ctx context.Context, name string) (<-chan *Update, func(), error) {
	dealer, err := p.Dealer(name)
	if err != nil {
		return nil, nil, err
	}

	return dealer.Subscribe(ctx)
}

// Games returns the public state of every game, sorted by name
func (p *PitBoss) Games(ctx context.Context) ([]*uno.PublicSnapshot, error) {
	p.lock.RLock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		dealers = append(dealers, dealer)
	}
	p.lock.RUnlock()

	games := make([]*uno.PublicSnapshot, 0, len(dealers))
	for _, dealer := range dealers {
		snapshot, err := dealer.PublicSnapshot(ctx)
		if err == ErrDealerClosed {
			// removed in the meantime
			continue
		} else if err != nil {
			return nil, err
		}

		games = append(games, snapshot)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Name < games[j].Name
	})

	return games, nil
}

// PendingGames returns the games that can still be joined
func (p *PitBoss) PendingGames(ctx context.Context) ([]*uno.PublicSnapshot, error) {
	games, err := p.Games(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]*uno.PublicSnapshot, 0, len(games))
	for _, game := range games {
		if game.State == uno.StatePending && len(game.Players) < uno.MaxPlayers {
			pending = append(pending, game)
		}
	}

	return pending, nil
}

// EndShift ends the shift of every dealer and waits for pending archives
func (p *PitBoss) EndShift() {
	p.lock.Lock()
	for name, dealer := range p.dealers {
		dealer.EndShift()
		delete(p.dealers, name)
	}
	p.lock.Unlock()

	p.archiving.Wait()
}

// retire removes a finished game once its subscribers had time to receive the final update
// NOTE: called from a dealer's run loop, it must not block
func (p *PitBoss) retire(dealer *Dealer) {
	atomic.StoreInt32(&dealer.finished, 1)

	time.AfterFunc(p.finishedTTL, func() {
		p.lock.Lock()
		current, found := p.dealers[dealer.name]
		if found && current == dealer {
			delete(p.dealers, dealer.name)
		}
		p.lock.Unlock()

		// the game was removed, or the name reused, in the meantime
		if current != dealer {
			return
		}

		dealer.EndShift()
		dealer.logger.Info("finished game retired")
	})
}

// archive stores the finished game in the background
// NOTE: called from a dealer's run loop, it must not block
func (p *PitBoss) archive(snapshot *uno.Snapshot) {
	if p.archiver == nil {
		return
	}

	p.archiving.Add(1)
	go func() {
		defer p.archiving.Done()

		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		logger := logrus.WithFields(logrus.Fields{
			"uuid": snapshot.ID,
			"name": snapshot.Name,
		})

		if err := p.archiver.ArchiveGame(ctx, snapshot); err != nil {
			logger.WithError(err).Error("could not archive game")
			return
		}

		logger.Info("game archived")
	}()
}
