package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"uno-server/pkg/db"
	"uno-server/pkg/uno"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrAlreadyArchived is returned when the game is already in the archive
var ErrAlreadyArchived = errors.New("game is already archived")

const maxRows = 100

// Game is a record in the `games` table
type Game struct {
	ID     string
	Name   string
	Winner string
	Data   *uno.Snapshot
	Ended  time.Time
}

const gamesColumns = `id, name, winner, data, ended`

// Store reads and writes finished games
type Store struct {
	db *sql.DB
}

// NewStore returns a store backed by the database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ArchiveGame stores the final state of a game
func (s *Store) ArchiveGame(ctx context.Context, snapshot *uno.Snapshot) error {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	var winner sql.NullString
	if name := Winner(snapshot); name != "" {
		winner = sql.NullString{String: name, Valid: true}
	}

	const query = `
INSERT INTO games (id, name, winner, data)
VALUES ($1, $2, $3, $4)`

	if _, err := s.db.ExecContext(ctx, query, snapshot.ID, snapshot.Name, winner, b); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return ErrAlreadyArchived
		}

		return err
	}

	return nil
}

// GameByID returns an archived game
// sql.ErrNoRows is returned if there is none
func (s *Store) GameByID(ctx context.Context, id string) (*Game, error) {
	const query = `
SELECT ` + gamesColumns + `
FROM games
WHERE id = $1`

	return gameByRow(s.db.QueryRowContext(ctx, query, id))
}

// ListGames returns archived games, most recently ended first
func (s *Store) ListGames(ctx context.Context, start int64, rows int) ([]*Game, error) {
	if rows <= 0 || rows > maxRows {
		rows = maxRows
	}

	const query = `
SELECT ` + gamesColumns + `
FROM games
ORDER BY ended DESC, id
OFFSET $1
LIMIT $2`

	res, err := s.db.QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	games := make([]*Game, 0)
	for res.Next() {
		game, err := gameByRow(res)
		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	return games, res.Err()
}

// DeleteGame removes a game from the archive
// sql.ErrNoRows is returned if there is none
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func gameByRow(row db.Scanner) (*Game, error) {
	var g Game
	var winner sql.NullString
	var data []byte

	if err := row.Scan(&g.ID, &g.Name, &winner, &data, &g.Ended); err != nil {
		return nil, err
	}

	g.Winner = winner.String
	if err := json.Unmarshal(data, &g.Data); err != nil {
		return nil, err
	}

	return &g, nil
}

// Winner returns the name of the first player that reached the winning score, or an empty string
func Winner(snapshot *uno.Snapshot) string {
	for _, player := range snapshot.Players {
		if player.Score >= uno.WinningScore {
			return player.PlayerName
		}
	}

	return ""
}
