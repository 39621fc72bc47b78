package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"uno-server/pkg/archive"
	"uno-server/pkg/db"
)

var command = flag.String("c", "games", "specifies the command (games, game, delete)")
var id = flag.String("id", "", "the game ID, for the game and delete commands")
var start = flag.Int64("start", 0, "the number of games to skip")
var rows = flag.Int("rows", 25, "the number of games to list")

func main() {
	flag.Parse()

	ctx := context.Background()
	store := archive.NewStore(db.Instance())

	switch *command {
	case "games":
		games, err := store.ListGames(ctx, *start, *rows)
		if err != nil {
			logrus.WithError(err).Fatal("could not list games")
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			writeJSON(games)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tWINNER\tPLAYERS\tROUNDS\tENDED")
		for _, game := range games {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				game.ID,
				game.Name,
				game.Winner,
				len(game.Data.Players),
				len(game.Data.Rounds),
				game.Ended.Format(time.RFC3339),
			)
		}
		_ = w.Flush()
	case "game":
		game, err := store.GameByID(ctx, requireID())
		if err != nil {
			logrus.WithError(err).Fatal("could not get game")
		}

		writeJSON(game)
	case "delete":
		gameID := requireID()
		answer, err := getInput(fmt.Sprintf("Delete game %s (y/N)", gameID))
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if answer == "" || strings.ToLower(answer)[0] != 'y' {
			return
		}

		if err := store.DeleteGame(ctx, gameID); err != nil {
			logrus.WithError(err).Fatal("could not delete game")
		}

		fmt.Printf("Deleted game %s\n", gameID)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func requireID() string {
	if *id == "" {
		logrus.Fatal("-id is required")
	}

	return *id
}

func writeJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Fatal("could not write JSON")
	}
}

func getInput(label string) (string, error) {
	fmt.Printf("%s: ", label)
	input, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(input), nil
}
