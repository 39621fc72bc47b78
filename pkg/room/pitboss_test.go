package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"uno-server/pkg/uno"
)

type fakeArchiver struct {
	lock      sync.Mutex
	snapshots []*uno.Snapshot
	err       error
}

func (f *fakeArchiver) ArchiveGame(_ context.Context, snapshot *uno.Snapshot) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.snapshots = append(f.snapshots, snapshot)
	return f.err
}

func newTestPitBoss(t *testing.T, opts Options) *PitBoss {
	t.Helper()

	if opts.Generator == nil {
		opts.Generator = zeroGenerator{}
	}

	p := NewPitBoss(opts)
	t.Cleanup(p.EndShift)
	return p
}

func TestPitBoss_CreateGame(t *testing.T) {
	ctx := context.Background()
	p := newTestPitBoss(t, Options{MaxGames: 2})

	snapshot, err := p.CreateGame(ctx, "G")
	assert.NoError(t, err)
	assert.Equal(t, "G", snapshot.Name)
	assert.Equal(t, uno.StatePending, snapshot.State)
	assert.Nil(t, snapshot.CurrentRoundIndex)
	assert.NotEmpty(t, snapshot.ID)

	_, err = p.CreateGame(ctx, "G")
	assert.Equal(t, ErrNameTaken, err)

	_, err = p.CreateGame(ctx, "")
	assert.Equal(t, ErrInvalidName, err)

	_, err = p.CreateGame(ctx, strings.Repeat("x", 41))
	assert.Equal(t, ErrInvalidName, err)

	_, err = p.CreateGame(ctx, "H")
	assert.NoError(t, err)

	_, err = p.CreateGame(ctx, "I")
	assert.Equal(t, ErrTooManyGames, err)

	assert.NoError(t, p.RemoveGame("H"))
	assert.Equal(t, ErrGameNotFound, p.RemoveGame("H"))

	_, err = p.CreateGame(ctx, "I")
	assert.NoError(t, err)
}

func TestPitBoss_GameNotFound(t *testing.T) {
	ctx := context.Background()
	p := newTestPitBoss(t, Options{})

	_, err := p.JoinGame(ctx, "nope", "Alice")
	assert.Equal(t, ErrGameNotFound, err)

	_, err = p.StartGame(ctx, "nope")
	assert.Equal(t, ErrGameNotFound, err)

	_, err = p.DrawCards(ctx, "nope", "Alice", 1)
	assert.Equal(t, ErrGameNotFound, err)

	_, err = p.PlayCard(ctx, "nope", "Alice", 0)
	assert.Equal(t, ErrGameNotFound, err)

	assert.Equal(t, ErrGameNotFound, p.PassTurn(ctx, "nope", "Alice"))

	_, err = p.AdvanceRoundIfFinished(ctx, "nope")
	assert.Equal(t, ErrGameNotFound, err)

	_, err = p.Snapshot(ctx, "nope")
	assert.Equal(t, ErrGameNotFound, err)

	_, err = p.PlayerHand(ctx, "nope", "Alice")
	assert.Equal(t, ErrGameNotFound, err)

	_, _, err = p.Subscribe(ctx, "nope")
	assert.Equal(t, ErrGameNotFound, err)
}

func TestPitBoss_JoinAndStart(t *testing.T) {
	ctx := context.Background()
	p := newTestPitBoss(t, Options{})

	_, err := p.CreateGame(ctx, "G")
	assert.NoError(t, err)

	_, err = p.StartGame(ctx, "G")
	assert.Equal(t, uno.ErrTooFewPlayers, err)

	_, err = p.JoinGame(ctx, "G", "")
	assert.Equal(t, ErrInvalidName, err)

	for _, name := range []string{"A", "B", "C", "D"} {
		hand, err := p.JoinGame(ctx, "G", name)
		assert.NoError(t, err)
		assert.Equal(t, name, hand.PlayerName)
		assert.Len(t, hand.Cards, 0)
	}

	_, err = p.JoinGame(ctx, "G", "E")
	assert.Equal(t, uno.ErrTooManyPlayers, err)

	_, err = p.AdvanceRoundIfFinished(ctx, "G")
	assert.Equal(t, uno.ErrNotStarted, err)

	snapshot, err := p.StartGame(ctx, "G")
	assert.NoError(t, err)
	assert.Equal(t, uno.StateStarted, snapshot.State)
	if assert.NotNil(t, snapshot.CurrentRoundIndex) {
		assert.Equal(t, 0, *snapshot.CurrentRoundIndex)
	}

	for _, player := range snapshot.Players {
		assert.Len(t, player.Cards, uno.CardsPerPlayer)
	}

	if assert.Len(t, snapshot.Rounds, 1) {
		round := snapshot.Rounds[0]
		assert.NotNil(t, round.DiscardTop)
		assert.Equal(t, 0, *round.CurrentPlayerIndex)
		assert.Equal(t, 108-4*uno.CardsPerPlayer-1, round.CardsLeft)
	}

	_, err = p.StartGame(ctx, "G")
	assert.Equal(t, uno.ErrAlreadyStarted, err)

	_, err = p.JoinGame(ctx, "G", "E")
	assert.Equal(t, uno.ErrAlreadyStarted, err)
}

func TestPitBoss_PendingGames(t *testing.T) {
	ctx := context.Background()
	p := newTestPitBoss(t, Options{})

	for _, name := range []string{"C", "A", "B", "D"} {
		_, err := p.CreateGame(ctx, name)
		assert.NoError(t, err)
	}

	for _, name := range []string{"p1", "p2", "p3", "p4"} {
		_, _ = p.JoinGame(ctx, "D", name)
	}

	_, _ = p.JoinGame(ctx, "B", "p1")
	_, _ = p.JoinGame(ctx, "B", "p2")
	_, err := p.StartGame(ctx, "B")
	assert.NoError(t, err)

	games, err := p.Games(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, gameNames(games))

	pending, err := p.PendingGames(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, gameNames(pending))
}

func gameNames(games []*uno.PublicSnapshot) []string {
	names := make([]string, len(games))
	for i, game := range games {
		names[i] = game.Name
	}

	return names
}

func TestPitBoss_PlayRound(t *testing.T) {
	ctx := context.Background()
	p := newTestPitBoss(t, Options{})

	// an unshuffled deck deals only blues:
	// A gets b0 b2 b4 b6 b8 b1 b3, B gets b1 b3 b5 b7 b9 b2 b4, b5 is flipped
	_, _ = p.CreateGame(ctx, "G")
	_, _ = p.JoinGame(ctx, "G", "A")
	_, _ = p.JoinGame(ctx, "G", "B")
	_, err := p.StartGame(ctx, "G")
	assert.NoError(t, err)

	ch, unsubscribe, err := p.Subscribe(ctx, "G")
	assert.NoError(t, err)
	defer unsubscribe()
	receive(t, ch)

	players := []string{"A", "B"}
	for i := 0; i < 12; i++ {
		accepted, err := p.PlayCard(ctx, "G", players[i%2], 0)
		assert.NoError(t, err)
		assert.True(t, accepted)
		receive(t, ch)

		winner, err := p.AdvanceRoundIfFinished(ctx, "G")
		assert.NoError(t, err)
		assert.Nil(t, winner)
	}

	public, _ := p.PublicSnapshot(ctx, "G")
	assert.True(t, public.Players[0].CanSayUno)
	assert.Equal(t, 1, public.Round)

	accepted, err := p.PlayCard(ctx, "G", "A", 0)
	assert.NoError(t, err)
	assert.True(t, accepted)

	update := receive(t, ch)
	last := update.Log[len(update.Log)-1]
	assert.Equal(t, "A", last.PlayerName)
	assert.Equal(t, "{} won the round", last.Message)

	snapshot, _ := p.Snapshot(ctx, "G")
	assert.True(t, snapshot.Rounds[0].IsFinished)
	assert.Equal(t, 4, snapshot.Players[0].Score)
	assert.Len(t, snapshot.Players[0].Cards, 0)
	assert.Equal(t, "b4", snapshot.Players[1].Cards[0].String())

	// the round is over
	accepted, err = p.PlayCard(ctx, "G", "B", 0)
	assert.NoError(t, err)
	assert.False(t, accepted)

	winner, err := p.AdvanceRoundIfFinished(ctx, "G")
	assert.NoError(t, err)
	assert.Nil(t, winner)
	receive(t, ch)

	snapshot, _ = p.Snapshot(ctx, "G")
	assert.Len(t, snapshot.Rounds, 2)
	assert.Equal(t, 1, *snapshot.CurrentRoundIndex)
	assert.Equal(t, 4, snapshot.Players[0].Score)
	assert.Len(t, snapshot.Players[0].Cards, uno.CardsPerPlayer)
	assert.Len(t, snapshot.Players[1].Cards, uno.CardsPerPlayer)
	assert.Equal(t, "b5", snapshot.Rounds[1].DiscardTop.String())
}

// finishGame gives A a winning score and ends the current round
func finishGame(t *testing.T, p *PitBoss, name string) {
	t.Helper()

	d, err := p.Dealer(name)
	require.NoError(t, err)
	require.NoError(t, d.exec(context.Background(), func() error {
		d.game.Player("A").AddToScore(uno.WinningScore)
		d.game.CurrentRound().Finish()
		return nil
	}))
}

func TestPitBoss_finishedGameIsRetired(t *testing.T) {
	ctx := context.Background()
	archiver := &fakeArchiver{}
	p := newTestPitBoss(t, Options{
		MaxGames:    1,
		Archiver:    archiver,
		FinishedTTL: 50 * time.Millisecond,
	})

	_, _ = p.CreateGame(ctx, "G")
	_, _ = p.JoinGame(ctx, "G", "A")
	_, _ = p.JoinGame(ctx, "G", "B")
	_, err := p.StartGame(ctx, "G")
	require.NoError(t, err)

	_, err = p.CreateGame(ctx, "H")
	assert.Equal(t, ErrTooManyGames, err)

	ch, unsubscribe, err := p.Subscribe(ctx, "G")
	require.NoError(t, err)
	defer unsubscribe()
	receive(t, ch)

	finishGame(t, p, "G")
	winner, err := p.AdvanceRoundIfFinished(ctx, "G")
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, "A", winner.PlayerName)

	// subscribers get the final update before the game goes away
	update := receive(t, ch)
	assert.Equal(t, uno.StateFinished, update.Game.State)

	// a finished game no longer holds a slot
	_, err = p.CreateGame(ctx, "H")
	assert.NoError(t, err)

	_, err = p.CreateGame(ctx, "I")
	assert.Equal(t, ErrTooManyGames, err)

	assert.Eventually(t, func() bool {
		_, err := p.Dealer("G")
		return err == ErrGameNotFound
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, p.GameCount())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		assert.Fail(t, "subscription was not closed")
	}

	// the name can be used again
	assert.NoError(t, p.RemoveGame("H"))
	_, err = p.CreateGame(ctx, "G")
	assert.NoError(t, err)
}

func TestPitBoss_archive(t *testing.T) {
	archiver := &fakeArchiver{}
	p := NewPitBoss(Options{Archiver: archiver})

	g := uno.NewGame("G")
	p.archive(g.Snapshot())

	archiver.lock.Lock()
	archiver.err = errors.New("test")
	archiver.lock.Unlock()
	p.archive(g.Snapshot())

	p.EndShift()
	assert.Len(t, archiver.snapshots, 2)

	// no archiver is a no-op
	NewPitBoss(Options{}).archive(g.Snapshot())
}
