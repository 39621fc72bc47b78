package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"uno-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("UNO_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("UNO_GAME_MAX_GAMES", "20")
	defer clear2()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal(":8080", cfg.Addr)
	a.Equal("postgres://uno@db:5432/uno?sslmode=disable", cfg.PGDSN)
	a.Equal("debug", cfg.Log.Level)
	a.True(cfg.Log.DisableAccessLogs)
	a.True(cfg.Archive.Enabled)
	a.Equal(20, cfg.Game.MaxGames)

	// not in the file
	a.Equal(7, cfg.Game.CardsPerPlayer)
	a.Equal("./sql", cfg.MigrationsPath)

	// ensure that it's only loaded once
	_ = os.Setenv("UNO_GAME_MAX_GAMES", "30")
	// ensure we aren't using a pointer
	cfg.Game.MaxGames = 0
	cfg = Instance()
	a.Equal(20, cfg.Game.MaxGames)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("UNO_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, 7, cfg.Game.CardsPerPlayer)
	assert.Equal(t, 100, cfg.Game.MaxGames)
	assert.Equal(t, 60, cfg.Game.FinishedSeconds)
	assert.False(t, cfg.Archive.Enabled)
}

func TestLoad_BadFile(t *testing.T) {
	clear1 := util.SetEnv("UNO_CONFIG_FILE", "testdata")
	defer clear1()

	assert.Error(t, Load())
}
