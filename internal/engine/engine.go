package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tatianab/detective-quest/internal/clues"
	"github.com/tatianab/detective-quest/internal/mansion"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/navigator"
	"github.com/tatianab/detective-quest/internal/observability"
	"github.com/tatianab/detective-quest/internal/suspects"
	"github.com/tatianab/detective-quest/internal/verdict"
)

// Options tune a new engine. Zero values are usable.
type Options struct {
	SupportsUndo bool
	MaxUndo      int
	Logger       *slog.Logger
	Tracer       trace.Tracer
	Narrator     Narrator
}

// Engine runs one investigation: it owns the map, the clue ledger and the
// suspect index, and drives the navigator over them.
type Engine struct {
	c         *models.Case
	rooms     *mansion.Map
	ledger    *clues.Ledger
	index     *suspects.Index
	nav       *navigator.Navigator
	narrator  Narrator
	tracer    trace.Tracer
	logger    *slog.Logger
	sessionID string
	started   bool
}

// ClueLine is one row of the final summary.
type ClueLine struct {
	Text    string
	Count   int
	Suspect string // "" when the clue implicates nobody known
}

// Summary is what the player sees before accusing.
type Summary struct {
	Clues    []ClueLine
	Suspects []string
}

// NewEngine builds the map from c and seeds the suspect index with its links.
func NewEngine(c *models.Case, opts Options) (*Engine, error) {
	rooms, err := mansion.New(c)
	if err != nil {
		return nil, err
	}

	index := suspects.New()
	for _, l := range c.Links {
		index.Upsert(l.Clue, l.Suspect)
	}

	ledger := clues.New()
	e := &Engine{
		c:         c,
		rooms:     rooms,
		ledger:    ledger,
		index:     index,
		narrator:  opts.Narrator,
		tracer:    opts.Tracer,
		logger:    opts.Logger,
		sessionID: uuid.NewString(),
	}
	if e.tracer == nil {
		e.tracer = noop.NewTracerProvider().Tracer("engine")
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	e.logger = e.logger.With("session_id", e.sessionID)
	e.nav = navigator.New(rooms, ledger, index, navigator.Options{
		SupportsUndo: opts.SupportsUndo,
		MaxDepth:     opts.MaxUndo,
	})

	e.logger.Info("investigation opened",
		"case", c.ShortName,
		"rooms", rooms.Len(),
		"links", index.Len(),
		"undo", opts.SupportsUndo,
	)
	return e, nil
}

// Context returns ctx tagged with the engine session id for tracing.
func (e *Engine) Context(ctx context.Context) context.Context {
	return observability.WithSessionID(ctx, e.sessionID)
}

// Start enters the entrance. Calling it again repeats the current room.
func (e *Engine) Start(ctx context.Context) navigator.Arrival {
	_, span := e.tracer.Start(e.Context(ctx), "engine.start")
	defer span.End()

	arrival := e.nav.Enter()
	e.started = true
	e.logArrival(arrival)
	span.SetAttributes(attribute.String("room", arrival.Room.Name))
	return arrival
}

// Step parses and applies one player token. Invalid tokens and refused
// moves come back as errors and change nothing.
func (e *Engine) Step(ctx context.Context, token string) (*navigator.Arrival, error) {
	_, span := e.tracer.Start(e.Context(ctx), "engine.step")
	defer span.End()

	if !e.started {
		e.Start(ctx)
	}

	action, err := navigator.ParseAction(token)
	if err != nil {
		e.logger.Debug("rejected input", "token", token)
		span.SetAttributes(attribute.String("rejected", err.Error()))
		return nil, err
	}
	span.SetAttributes(attribute.String("action", action.String()))

	arrival, err := e.nav.Step(action)
	if err != nil {
		e.logger.Debug("refused move",
			"action", action.String(),
			"room", e.nav.Current().Name,
			"error", err,
		)
		span.SetAttributes(attribute.String("rejected", err.Error()))
		return nil, err
	}
	if arrival == nil {
		e.logger.Info("exploration ended", "room", e.nav.Current().Name, "clues", e.ledger.Len())
		return nil, nil
	}
	e.logArrival(*arrival)
	span.SetAttributes(attribute.String("room", arrival.Room.Name))
	return arrival, nil
}

func (e *Engine) logArrival(a navigator.Arrival) {
	attrs := []any{"room", a.Room.Name, "depth", e.nav.Depth()}
	if a.Clue != nil {
		attrs = append(attrs, "clue", a.Clue.Text, "count", a.Clue.Count, "suspect", a.Clue.Suspect)
	}
	if a.Final {
		attrs = append(attrs, "final", true)
	}
	e.logger.Debug("arrived", attrs...)
}

// Done reports whether exploration is over.
func (e *Engine) Done() bool {
	return e.nav.Done()
}

// SupportsUndo reports whether back is available.
func (e *Engine) SupportsUndo() bool {
	return e.nav.SupportsUndo()
}

// Exits lists the ways out of the current room.
func (e *Engine) Exits() navigator.Exits {
	return e.nav.Exits()
}

// Current is the room the player stands in.
func (e *Engine) Current() mansion.Room {
	return e.nav.Current()
}

// Summary lists gathered clues in text order with their suspects, and every
// known suspect.
func (e *Engine) Summary() Summary {
	var s Summary
	next := e.ledger.InOrder()
	for rec, ok := next(); ok; rec, ok = next() {
		suspect, _ := e.index.Lookup(rec.Text)
		s.Clues = append(s.Clues, ClueLine{Text: rec.Text, Count: rec.Count, Suspect: suspect})
	}
	s.Suspects = e.index.Suspects()
	return s
}

// Accuse judges the accusation against the gathered clues.
func (e *Engine) Accuse(ctx context.Context, accused string) verdict.Result {
	_, span := e.tracer.Start(e.Context(ctx), "engine.accuse")
	defer span.End()

	result := verdict.Judge(e.ledger, e.index, accused)
	span.SetAttributes(
		attribute.String("outcome", result.Outcome.String()),
		attribute.Int("clue_count", result.Count),
	)
	e.logger.Info("verdict",
		"accused", result.Accused,
		"count", result.Count,
		"outcome", result.Outcome.String(),
	)
	return result
}

// Narrate asks the narrator to describe an arrival. Without a narrator it
// returns "".
func (e *Engine) Narrate(ctx context.Context, a navigator.Arrival) (string, error) {
	if e.narrator == nil {
		return "", nil
	}
	req := RoomScene{
		CaseTitle: e.c.Title,
		Room:      a.Room.Name,
		Exits:     a.Exits,
	}
	if a.Clue != nil {
		req.Clue = a.Clue.Text
	}
	text, err := e.narrator.DescribeRoom(e.Context(ctx), req)
	if err != nil {
		e.logger.Warn("narration failed", "room", a.Room.Name, "error", err)
		return "", err
	}
	return text, nil
}

// HasNarrator reports whether arrivals can be narrated.
func (e *Engine) HasNarrator() bool {
	return e.narrator != nil
}

// Case is the definition being played.
func (e *Engine) Case() *models.Case {
	return e.c
}

// SessionID identifies this investigation in logs and traces.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Close releases the ledger, the index and the narrator.
func (e *Engine) Close() error {
	e.ledger.Reset()
	e.index.Reset()
	if e.narrator != nil {
		return e.narrator.Close()
	}
	return nil
}
