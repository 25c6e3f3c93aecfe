package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/tatianab/detective-quest/internal/config"
	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/verdict"
)

const (
	games    = 1000
	maxTurns = 40
	seed     = 7
)

// player decides where to go next and whom to accuse.
type player interface {
	Name() string
	Move(rng *rand.Rand, e *engine.Engine) string
	Accuse(rng *rand.Rand, s engine.Summary) string
}

// wanderer picks any open way and accuses a random known suspect.
type wanderer struct{}

func (wanderer) Name() string { return "wanderer" }

func (wanderer) Move(rng *rand.Rand, e *engine.Engine) string {
	return randomMove(rng, e)
}

func (wanderer) Accuse(rng *rand.Rand, s engine.Summary) string {
	if len(s.Suspects) == 0 {
		return ""
	}
	return s.Suspects[rng.IntN(len(s.Suspects))]
}

// sleuth moves like the wanderer but accuses whoever the collected clues
// point to most often.
type sleuth struct{}

func (sleuth) Name() string { return "sleuth" }

func (sleuth) Move(rng *rand.Rand, e *engine.Engine) string {
	return randomMove(rng, e)
}

func (sleuth) Accuse(_ *rand.Rand, s engine.Summary) string {
	weight := make(map[string]int)
	best := ""
	for _, c := range s.Clues {
		if c.Suspect == "" {
			continue
		}
		weight[c.Suspect] += c.Count
		if weight[c.Suspect] > weight[best] || (weight[c.Suspect] == weight[best] && c.Suspect < best) {
			best = c.Suspect
		}
	}
	return best
}

func randomMove(rng *rand.Rand, e *engine.Engine) string {
	if rng.IntN(10) == 0 {
		return "s"
	}
	ex := e.Exits()
	var moves []string
	if ex.Left != "" {
		moves = append(moves, "e")
	}
	if ex.Right != "" {
		moves = append(moves, "d")
	}
	if ex.Back != "" {
		moves = append(moves, "b")
	}
	if len(moves) == 0 {
		return "s"
	}
	return moves[rng.IntN(len(moves))]
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	c, err := models.LoadCase(cfg.CasePath)
	if err != nil {
		log.Fatalf("Failed to load case: %v", err)
	}

	fmt.Printf("--- Simulating %d investigations per player in %q (%s variant) ---\n\n", games, c.Title, cfg.Variant)
	for _, p := range []player{wanderer{}, sleuth{}} {
		rng := rand.New(rand.NewPCG(seed, seed))
		outcomes := make(map[verdict.Outcome]int)
		turns := 0
		for range games {
			result, n, err := investigate(ctx, rng, p, c, cfg)
			if err != nil {
				log.Fatalf("Investigation failed: %v", err)
			}
			outcomes[result.Outcome]++
			turns += n
		}

		fmt.Printf("Player: %s\n", p.Name())
		for _, o := range []verdict.Outcome{verdict.OutcomeSupported, verdict.OutcomeUnsupported, verdict.OutcomeNoAccusation} {
			fmt.Printf("  %-14s %5d (%.1f%%)\n", o.String()+":", outcomes[o], 100*float64(outcomes[o])/games)
		}
		fmt.Printf("  average turns: %.2f\n\n", float64(turns)/games)
	}
}

func investigate(ctx context.Context, rng *rand.Rand, p player, c *models.Case, cfg *config.Config) (verdict.Result, int, error) {
	e, err := engine.NewEngine(c, engine.Options{
		SupportsUndo: cfg.SupportsUndo(),
		MaxUndo:      cfg.MaxUndo,
	})
	if err != nil {
		return verdict.Result{}, 0, err
	}
	defer e.Close()

	e.Start(ctx)
	turn := 0
	for ; turn < maxTurns && !e.Done(); turn++ {
		// Refused moves still use up a turn.
		_, _ = e.Step(ctx, p.Move(rng, e))
	}
	return e.Accuse(ctx, p.Accuse(rng, e.Summary())), turn, nil
}
