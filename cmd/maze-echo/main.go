package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/maze-echo/audio"
	"github.com/lixenwraith/maze-echo/config"
	"github.com/lixenwraith/maze-echo/constant"
	"github.com/lixenwraith/maze-echo/game"
	"github.com/lixenwraith/maze-echo/level"
)

var (
	envFileFlag = flag.String("env", ".env", "Path to .env file")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/maze-echo.log")
	seedFlag    = flag.Int64("seed", 0, "Maze and track seed (0 = random)")
	scoreFlag   = flag.Int("score", -1, "Starting score (-1 = from config)")
	playerFlag  = flag.String("player", "", "Player name")
	muteFlag    = flag.Bool("mute", false, "Run without an audio device")
)

func main() {
	flag.Parse()

	cfg := config.Load(*envFileFlag)
	applyFlags(&cfg)

	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := audio.NewOutput(cfg.Audio, constant.SpeakerBufferDuration)
	engine, err := audio.NewAudioEngine(cfg.Audio, out, audio.DefaultLoader(cfg.Audio))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()
	go engine.Run(ctx)

	session, err := game.NewSession(game.Options{
		PlayerName: cfg.PlayerName,
		Level: level.Options{
			Score:      cfg.StartScore,
			MapPenalty: cfg.MapPenalty,
			Seed:       cfg.Seed,
		},
		Audio: engine,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}

	ui, err := NewUI(session, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			ui.cleanup()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMAZE-ECHO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	session.Start()
	ui.run()
	ui.cleanup()

	st := session.Stats()
	log.Printf("[APP] exit: player=%s score=%d levels=%d elapsed=%v", st.PlayerName, st.Score, st.LevelsCleared, st.Elapsed)
	fmt.Printf("%s: score %d, %d levels cleared in %v\n", st.PlayerName, st.Score, st.LevelsCleared, st.Elapsed.Round(time.Second))
}

// applyFlags lets explicit command-line flags override file and environment values
func applyFlags(cfg *config.Config) {
	if *debugFlag {
		cfg.Debug = true
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *scoreFlag >= 0 {
		cfg.StartScore = *scoreFlag
	}
	if *playerFlag != "" {
		cfg.PlayerName = *playerFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
}
