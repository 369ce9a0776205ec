// Command autoplay plays Retro Tactics against a running server through the
// REST API. It creates (or resumes) a session, clicks with a greedy
// strategy, acknowledges every damage animation and starts a new run when
// one is lost, until a run is won or the attempt budget is spent.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/pkg/logger"
)

// errStuck means the strategy found no useful click
var errStuck = errors.New("no useful click available")

// maxAcks bounds consecutive acknowledgements after one click
const maxAcks = 8

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "Play Retro Tactics through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Game configuration name"},
			&cli.StringFlag{Name: "continue", Usage: "Resume an existing session by ID"},
			&cli.IntFlag{Name: "max-clicks", Value: 2000, Usage: "Maximum clicks per attempt"},
			&cli.IntFlag{Name: "max-attempts", Value: 20, Usage: "Maximum attempts before giving up"},
			&cli.IntFlag{Name: "delay", Usage: "Delay between clicks in milliseconds"},
			&cli.IntFlag{Name: "seed", Usage: "Random seed for tie breaks (0 = time based)"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger.Init()
	if cmd.Bool("v") {
		logger.SetDebug()
	}
	log := logger.Log.WithField("component", "autoplay")

	seed := int64(cmd.Int("seed"))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	client := NewClient(cmd.String("url"))
	player := &Player{
		client:    client,
		strategy:  NewStrategy(rand.New(rand.NewSource(seed))),
		maxClicks: cmd.Int("max-clicks"),
		delay:     time.Duration(cmd.Int("delay")) * time.Millisecond,
		log:       log,
	}

	state, err := open(ctx, client, cmd.String("continue"), cmd.String("config"))
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"session": client.SessionID(),
		"config":  state.ConfigName,
		"levels":  state.FinalLevel,
	}).Info("Playing")

	attempts := cmd.Int("max-attempts")
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 || state.Phase == engine.PhaseGameOver {
			result, err := client.NewGame(ctx, 1)
			if err != nil {
				return fmt.Errorf("failed to start new game: %w", err)
			}
			state = result.GameState
		}
		player.strategy.Reset()

		final, clicks, err := player.Play(ctx, state)
		entry := log.WithFields(logrus.Fields{"attempt": attempt, "clicks": clicks})
		if final != nil {
			entry = entry.WithFields(logrus.Fields{"game_level": final.Level, "score": final.Score})
		}
		if err != nil && !errors.Is(err, errStuck) {
			return err
		}
		if final != nil && final.LastOutcome != nil && final.LastOutcome.Victory {
			entry.WithField("final_score", final.LastOutcome.FinalScore).Info("Victory")
			return nil
		}
		entry.Info("Attempt lost")
		state = final
	}

	return fmt.Errorf("failed to win after %d attempts (session %s)", attempts, client.SessionID())
}

// open resumes sessionID when given and reachable, otherwise creates a session
func open(ctx context.Context, client *Client, sessionID, configName string) (*engine.Snapshot, error) {
	if sessionID != "" {
		state, err := client.Resume(ctx, sessionID)
		if err == nil {
			return state, nil
		}
		logger.Log.WithError(err).Warn("Failed to resume session, creating a new one")
	}

	state, err := client.CreateSession(ctx, configName)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return state, nil
}

// Player runs the click loop of one attempt
type Player struct {
	client    *Client
	strategy  *Strategy
	maxClicks int
	delay     time.Duration
	log       *logrus.Entry
}

// Play clicks until the run ends, the strategy gets stuck or the click budget
// is spent. It returns the last state and the number of clicks made.
func (p *Player) Play(ctx context.Context, state *engine.Snapshot) (*engine.Snapshot, int, error) {
	clicks := 0
	for clicks < p.maxClicks {
		if state == nil {
			return nil, clicks, errors.New("server returned no game state")
		}
		if runOver(state) {
			return state, clicks, nil
		}

		if state.AwaitingAck {
			next, err := p.acknowledge(ctx)
			if err != nil {
				return state, clicks, err
			}
			state = next
			continue
		}

		index, ok := p.strategy.Next(state)
		if !ok {
			return state, clicks, errStuck
		}

		result, err := p.client.Click(ctx, index)
		if err != nil {
			return state, clicks, err
		}
		clicks++
		p.log.WithFields(logrus.Fields{
			"index":   index,
			"success": result.Success,
			"phase":   result.GameState.Phase,
		}).Debug("Click")
		state = result.GameState

		if p.delay > 0 {
			time.Sleep(p.delay)
		}
	}
	return state, clicks, nil
}

func (p *Player) acknowledge(ctx context.Context) (*engine.Snapshot, error) {
	var state *engine.Snapshot
	for i := 0; i < maxAcks; i++ {
		result, err := p.client.Acknowledge(ctx)
		if err != nil {
			return nil, err
		}
		state = result.GameState
		if state == nil || !state.AwaitingAck {
			return state, nil
		}
	}
	return state, fmt.Errorf("still awaiting acknowledge after %d acks", maxAcks)
}

func runOver(state *engine.Snapshot) bool {
	if state.LastOutcome != nil && state.LastOutcome.RunOver {
		return true
	}
	return state.Phase == engine.PhaseGameOver
}
