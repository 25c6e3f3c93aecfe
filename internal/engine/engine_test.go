package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/detective-quest/internal/logging"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/navigator"
	"github.com/tatianab/detective-quest/internal/verdict"
)

func scenarioCase() *models.Case {
	return &models.Case{
		Title: "Scenario",
		Rooms: []models.RoomSpec{
			{Name: "Hall", Clue: "A", Left: "Sala", Right: "Cozinha"},
			{Name: "Sala", Left: "Biblioteca", Right: "Jardim"},
			{Name: "Cozinha"},
			{Name: "Biblioteca", Clue: "A"},
			{Name: "Jardim"},
		},
		Links: []models.LinkSpec{{Clue: "A", Suspect: "Suspect1"}},
	}
}

func newEngine(t *testing.T, c *models.Case, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(c, opts)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestScenarioSupportedAccusation(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, scenarioCase(), Options{SupportsUndo: true})

	e.Start(ctx)
	for _, token := range []string{"e", "E"} {
		_, err := e.Step(ctx, token)
		require.NoError(t, err)
	}
	arrival, err := e.Step(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, arrival)
	assert.True(t, e.Done())

	summary := e.Summary()
	assert.Equal(t, []ClueLine{{Text: "A", Count: 2, Suspect: "Suspect1"}}, summary.Clues)
	assert.Equal(t, []string{"Suspect1"}, summary.Suspects)

	result := e.Accuse(ctx, "Suspect1")
	assert.Equal(t, verdict.Result{Accused: "Suspect1", Count: 2, Outcome: verdict.OutcomeSupported}, result)
}

func TestEmptyAccusation(t *testing.T) {
	e := newEngine(t, scenarioCase(), Options{SupportsUndo: true})
	e.Start(context.Background())
	result := e.Accuse(context.Background(), "")
	assert.Equal(t, verdict.OutcomeNoAccusation, result.Outcome)
	assert.Equal(t, 0, result.Count)
}

func TestStepRejections(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, scenarioCase(), Options{SupportsUndo: true})

	_, err := e.Step(ctx, "x")
	assert.ErrorIs(t, err, navigator.ErrInvalidInput)
	_, err = e.Step(ctx, "b")
	assert.ErrorIs(t, err, navigator.ErrNoPriorRoom)
	assert.Equal(t, "Hall", e.Current().Name)

	_, err = e.Step(ctx, "d")
	require.NoError(t, err)
	_, err = e.Step(ctx, "e")
	assert.ErrorIs(t, err, navigator.ErrNoPath)
	assert.Equal(t, "Cozinha", e.Current().Name)
}

func TestStepStartsImplicitly(t *testing.T) {
	e := newEngine(t, scenarioCase(), Options{})
	_, err := e.Step(context.Background(), "d")
	require.NoError(t, err)
	assert.True(t, e.Done())
	assert.Equal(t, []ClueLine{{Text: "A", Count: 1, Suspect: "Suspect1"}}, e.Summary().Clues)
}

func TestDefaultMansionBasementRepeatsHallClue(t *testing.T) {
	ctx := context.Background()
	c, err := models.DefaultCase()
	require.NoError(t, err)
	e := newEngine(t, c, Options{SupportsUndo: true})

	e.Start(ctx)
	var last *navigator.Arrival
	for _, token := range []string{"d", "d", "d"} {
		last, err = e.Step(ctx, token)
		require.NoError(t, err)
	}
	require.NotNil(t, last)
	assert.Equal(t, "Porão", last.Room.Name)
	assert.Equal(t, navigator.SightingKnown, last.Clue.Kind)
	assert.Equal(t, 2, last.Clue.Count)

	result := e.Accuse(ctx, "Sr. Morais")
	assert.Equal(t, 3, result.Count) // two footprints and the threatening note
	assert.Equal(t, verdict.OutcomeSupported, result.Outcome)
	assert.Equal(t, verdict.OutcomeUnsupported, e.Accuse(ctx, "Chef Marco").Outcome)
}

func TestLogsCarrySessionID(t *testing.T) {
	var buf bytes.Buffer
	e := newEngine(t, scenarioCase(), Options{Logger: logging.New(true, &buf)})
	e.Start(context.Background())

	assert.NotEmpty(t, e.SessionID())
	assert.Contains(t, buf.String(), "session_id="+e.SessionID())
	assert.Contains(t, buf.String(), "room=Hall")
}

func TestInvalidCase(t *testing.T) {
	_, err := NewEngine(&models.Case{}, Options{})
	assert.ErrorIs(t, err, models.ErrInvalidCase)
}

type fakeNarrator struct {
	scenes []RoomScene
	err    error
	closed bool
}

func (f *fakeNarrator) DescribeRoom(_ context.Context, scene RoomScene) (string, error) {
	f.scenes = append(f.scenes, scene)
	if f.err != nil {
		return "", f.err
	}
	return "You smell old paper.", nil
}

func (f *fakeNarrator) Close() error {
	f.closed = true
	return nil
}

func TestNarrate(t *testing.T) {
	ctx := context.Background()
	n := &fakeNarrator{}
	e, err := NewEngine(scenarioCase(), Options{SupportsUndo: true, Narrator: n})
	require.NoError(t, err)
	assert.True(t, e.HasNarrator())

	text, err := e.Narrate(ctx, e.Start(ctx))
	require.NoError(t, err)
	assert.Equal(t, "You smell old paper.", text)
	require.Len(t, n.scenes, 1)
	assert.Equal(t, RoomScene{
		CaseTitle: "Scenario",
		Room:      "Hall",
		Clue:      "A",
		Exits:     navigator.Exits{Left: "Sala", Right: "Cozinha"},
	}, n.scenes[0])

	n.err = errors.New("quota")
	_, err = e.Narrate(ctx, e.Start(ctx))
	assert.Error(t, err)

	require.NoError(t, e.Close())
	assert.True(t, n.closed)
}

func TestNarrateWithoutNarrator(t *testing.T) {
	e := newEngine(t, scenarioCase(), Options{})
	text, err := e.Narrate(context.Background(), e.Start(context.Background()))
	assert.NoError(t, err)
	assert.Empty(t, text)
	assert.False(t, e.HasNarrator())
}

func TestRenderScene(t *testing.T) {
	prompt, err := renderScene(RoomScene{
		CaseTitle: "Mansion",
		Room:      "Biblioteca",
		Clue:      "página arrancada do diário",
		Exits:     navigator.Exits{Left: "Quarto Principal", Right: "Lavabo"},
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Biblioteca"`)
	assert.Contains(t, prompt, `"página arrancada do diário"`)
	assert.Contains(t, prompt, `Doorways lead to "Quarto Principal" and "Lavabo".`)

	prompt, err = renderScene(RoomScene{CaseTitle: "Mansion", Room: "Jardim"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Nothing in this room looks out of place.")
	assert.Contains(t, prompt, "There is no way further in from here.")
}
