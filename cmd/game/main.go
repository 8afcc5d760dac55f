// Command game runs the sound quiz in a terminal: the same session,
// scoring, playback and leaderboard core the web front end embeds, driven
// over stdin. Useful for smoke-testing a deployment end to end.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/emilia-tb/sg60-game/internal/audio"
	"github.com/emilia-tb/sg60-game/internal/config"
	"github.com/emilia-tb/sg60-game/internal/game"
	"github.com/emilia-tb/sg60-game/internal/leaderboard"
	"github.com/emilia-tb/sg60-game/internal/logging"
)

type clientConfig struct {
	Game        config.Game
	Audio       config.Audio
	Leaderboard config.Leaderboard

	AssetBaseURL string `env:"AUDIO_ASSET_BASE_URL" envDefault:"https://game.hearingpartners.com.sg"`
	DataDir      string `env:"GAME_DATA_DIR" envDefault:"."`
}

// engineStarter adapts the audio engine to the controller's audio port.
type engineStarter struct {
	engine *audio.Engine
}

func (s engineStarter) Start(ctx context.Context, uri string) game.PlaybackHandle {
	return s.engine.Start(ctx, uri)
}

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	cfg := clientConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New("sg60-game-cli", os.Getenv("APP_ENV"))
	logger = logger.Level(zerolog.WarnLevel)

	engine := audio.NewEngine(audio.Options{
		Loader:          audio.NewHTTPLoader(cfg.AssetBaseURL),
		Sink:            audio.NullSink{},
		PlaybackTimeout: cfg.Audio.PlaybackTimeout,
		ToneFrequency:   cfg.Audio.ToneFrequencyHz,
		ToneDuration:    cfg.Audio.ToneDuration,
	}, logger)

	var (
		submitter game.Submitter
		ranker    *leaderboard.Ranker
		remote    *leaderboard.Client
	)
	if cfg.Leaderboard.RemoteURL != "" {
		remote = leaderboard.NewClient(leaderboard.ClientOptions{
			BaseURL:         cfg.Leaderboard.RemoteURL,
			SharedSecret:    cfg.Leaderboard.SharedSecret,
			LeaderboardName: cfg.Leaderboard.Namespace,
		}, logger)
		submitter = remote
	} else {
		store := leaderboard.NewFileStore(cfg.DataDir, cfg.Leaderboard.Namespace)
		ranker = leaderboard.NewRanker(store, cfg.Leaderboard.Capacity, logger)
		submitter = ranker
	}

	ctrl := game.NewController(game.Options{
		CountdownTicks:  cfg.Game.CountdownTicks,
		ConsentRequired: cfg.Game.ConsentRequired,
		FeedbackEnabled: cfg.Game.FeedbackEnabled,
		Audio:           engineStarter{engine},
		Submitter:       submitter,
	}, logger)

	in := bufio.NewScanner(os.Stdin)
	run(ctrl, in, cfg, ranker, remote)
}

func run(ctrl *game.Controller, in *bufio.Scanner, cfg clientConfig, ranker *leaderboard.Ranker, remote *leaderboard.Client) {
	questions := game.Sounds()

	fmt.Println("Rediscover the Sounds of Singapore — SG60 Sound Game!")
	fmt.Println("Press Enter to start.")
	in.Scan()
	ctrl.Start()

	for !promptName(ctrl, in, cfg.Game.ConsentRequired) {
	}

	// Countdown runs on its own ticker; mirror it on screen.
	for ctrl.Phase() == game.PhaseCountdown {
		if n := ctrl.Countdown(); n > 0 {
			fmt.Printf("%d...\n", n)
		} else {
			fmt.Println("Go!")
		}
		time.Sleep(time.Second)
	}

	for ctrl.Phase() == game.PhaseQuestion {
		playQuestion(ctrl, in, len(questions))
	}

	for ctrl.Phase() == game.PhaseParticulars {
		promptParticulars(ctrl, in)
	}
	for ctrl.Phase() == game.PhaseFeedback {
		promptFeedback(ctrl, in)
	}

	showResults(ctrl, cfg, ranker, remote)
}

func promptName(ctrl *game.Controller, in *bufio.Scanner, consentRequired bool) bool {
	fmt.Print("What is your name? ")
	in.Scan()
	name := in.Text()

	consent := true
	if consentRequired {
		fmt.Print("Do you consent to your name appearing on the leaderboard? [y/n] ")
		in.Scan()
		consent = strings.EqualFold(strings.TrimSpace(in.Text()), "y")
	}
	if !ctrl.SubmitName(name, consent) {
		fmt.Println("A name and consent are needed to play.")
		return false
	}
	return true
}

func playQuestion(ctrl *game.Controller, in *bufio.Scanner, total int) {
	q, i, ok := ctrl.CurrentQuestion()
	if !ok {
		return
	}

	fmt.Printf("\nSound %d of %d: %s\n%s\n", i+1, total, q.Name, q.Description)
	fmt.Println("Press Enter to play the sound.")
	in.Scan()
	ctrl.PlaySound()

	if pb := ctrl.Playback(); pb != nil {
		select {
		case <-pb.Done():
		case <-time.After(15 * time.Second):
		}
		if apb, isAudio := pb.(*audio.Playback); isAudio && apb.Outcome() == audio.OutcomeFallback {
			fmt.Println("Audio file couldn't load. Playing backup sound instead.")
		}
	}

	fmt.Println("What sound did you hear?")
	for n, opt := range game.AnswerOptions {
		line := opt
		if zh := game.OptionTranslations[opt]; zh != "" {
			line += " / " + zh
		}
		fmt.Printf("  %2d) %s\n", n+1, line)
	}
	for {
		fmt.Print("> ")
		in.Scan()
		choice, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil || choice < 1 || choice > len(game.AnswerOptions) {
			fmt.Println("Pick an option number.")
			continue
		}
		ctrl.Respond(game.AnswerOptions[choice-1])
		return
	}
}

func promptParticulars(ctrl *game.Controller, in *bufio.Scanner) {
	fmt.Println("\nAlmost done! Please provide your contact details to claim your prize.")
	fmt.Print("Full name: ")
	in.Scan()
	name := in.Text()
	fmt.Print("Phone: ")
	in.Scan()
	phone := in.Text()
	fmt.Print("Email: ")
	in.Scan()
	email := in.Text()

	if !ctrl.SubmitParticulars(game.Particulars{FullName: name, Phone: phone, Email: email}) {
		fmt.Println("All fields are required.")
	}
}

func promptFeedback(ctrl *game.Controller, in *bufio.Scanner) {
	fmt.Print("\nHow did you enjoy the game? Rate 1-5: ")
	in.Scan()
	rating, _ := strconv.Atoi(strings.TrimSpace(in.Text()))

	fmt.Print("Interested in a free hearing test? [y/n] ")
	in.Scan()
	interested := game.InterestNo
	if strings.EqualFold(strings.TrimSpace(in.Text()), "y") {
		interested = game.InterestYes
	}

	outlet := ""
	if interested == game.InterestYes {
		fmt.Println("Which outlet would you like to visit?")
		for n, o := range game.Outlets {
			fmt.Printf("  %d) %s\n", n+1, o)
		}
		fmt.Print("> ")
		in.Scan()
		if choice, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil && choice >= 1 && choice <= len(game.Outlets) {
			outlet = game.Outlets[choice-1]
		}
	}

	if !ctrl.CompleteFeedback(rating, interested, outlet) {
		fmt.Println("A rating and an interest answer are required.")
	}
}

func showResults(ctrl *game.Controller, cfg clientConfig, ranker *leaderboard.Ranker, remote *leaderboard.Client) {
	snap := ctrl.Snapshot()
	total := len(game.Sounds())
	fmt.Printf("\nResults for %s: %d/%d in %s\n", snap.PlayerName, snap.Score(), total, snap.TotalGameTime.Round(time.Second))

	for i, r := range snap.Responses {
		mark := "✗"
		if r.Correct {
			mark = "✓"
		}
		fmt.Printf("  %s %-30s %.1fs\n", mark, game.Sounds()[i].Name, float64(r.TimeSpentMS)/1000)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		top []leaderboard.Entry
		err error
	)
	if remote != nil {
		top, err = remote.FetchTop(ctx, cfg.Leaderboard.TopDisplay)
	} else if ranker != nil {
		top, err = ranker.Top(ctx, cfg.Leaderboard.TopDisplay)
	}
	if err != nil || len(top) == 0 {
		fmt.Println("\nBe the first to play and appear on the leaderboard!")
		return
	}

	fmt.Printf("\nTop %d Players\n", cfg.Leaderboard.TopDisplay)
	for i, e := range top {
		fmt.Printf("  #%d %-20s %d/%d  %d:%02d\n", i+1, e.Name, e.Score, total, e.TotalTime/60, e.TotalTime%60)
	}
}
