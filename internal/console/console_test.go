package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/verdict"
)

func play(t *testing.T, opts engine.Options, input string) (verdict.Result, string) {
	t.Helper()
	c, err := models.DefaultCase()
	require.NoError(t, err)
	e, err := engine.NewEngine(c, opts)
	require.NoError(t, err)
	defer e.Close()

	var out bytes.Buffer
	result, err := Play(context.Background(), e, strings.NewReader(input), &out)
	require.NoError(t, err)
	return result, out.String()
}

func TestPlaySupportedAccusation(t *testing.T) {
	result, out := play(t, engine.Options{SupportsUndo: true}, "d\nd\nd\ns\nSr. Morais\n")

	assert.Equal(t, verdict.OutcomeSupported, result.Outcome)
	assert.Equal(t, 3, result.Count)
	assert.Contains(t, out, "You are in: Hall de Entrada")
	assert.Contains(t, out, `New clue found: "pegada barro fora da porta"`)
	assert.Contains(t, out, `Already collected: "pegada barro fora da porta" (count 2)`)
	assert.Contains(t, out, "-> This clue points to: Sr. Morais")
	assert.Contains(t, out, "(b) Back to Escritório")
	assert.Contains(t, out, "Exploration ended by the player.")
	assert.Contains(t, out, "Accusation supported")
}

func TestPlaySummaryIsSorted(t *testing.T) {
	_, out := play(t, engine.Options{SupportsUndo: true}, "e\ne\ns\n\n")

	// byte order puts "pe" before "pá"
	pegada := strings.Index(out, `"pegada barro fora da porta" (collected 1 time(s)) => points to: Sr. Morais`)
	pagina := strings.Index(out, `"página arrancada do diário" (collected 1 time(s)) => points to: Sra. Duarte`)
	xicara := strings.Index(out, `"xícara quebrada" (collected 1 time(s)) => points to: Sra. Duarte`)
	require.True(t, pegada > 0 && pagina > 0 && xicara > 0, out)
	assert.Less(t, pegada, pagina)
	assert.Less(t, pagina, xicara)
	assert.Contains(t, out, "Known suspects:")
	assert.Contains(t, out, "No accusation made.")
}

func TestPlayRejections(t *testing.T) {
	result, out := play(t, engine.Options{SupportsUndo: true}, "b\nzz\nd\ne\ns\nChef Marco\n")

	assert.Contains(t, out, "Cannot do that: no prior room.")
	assert.Contains(t, out, "Cannot do that: invalid input.")
	assert.Contains(t, out, "Cannot do that: no such path.")
	assert.Equal(t, verdict.OutcomeUnsupported, result.Outcome)
	assert.Equal(t, 1, result.Count)
	assert.Contains(t, out, "Accusation unsupported")
}

func TestPlayUndoCapacity(t *testing.T) {
	_, out := play(t, engine.Options{SupportsUndo: true, MaxUndo: 1}, "e\ne\ns\n\n")
	assert.Contains(t, out, "Cannot do that: undo capacity exceeded.")
}

func TestPlayClassicEndsOnLeaf(t *testing.T) {
	result, out := play(t, engine.Options{}, "e\nd\nPintor Raul\n")

	assert.NotContains(t, out, "(b)")
	assert.Contains(t, out, "You are in: Jardim")
	assert.Contains(t, out, "There are no more paths to follow.")
	assert.Equal(t, "Pintor Raul", result.Accused)
	assert.Equal(t, 0, result.Count)
}

func TestPlayInputClosed(t *testing.T) {
	result, out := play(t, engine.Options{SupportsUndo: true}, "e\n")
	assert.Contains(t, out, "Input closed.")
	assert.Equal(t, verdict.OutcomeNoAccusation, result.Outcome)
}

func TestPlayNoClues(t *testing.T) {
	c := &models.Case{Title: "Empty", Rooms: []models.RoomSpec{{Name: "Cela", Left: "Pátio"}, {Name: "Pátio"}}}
	e, err := engine.NewEngine(c, engine.Options{SupportsUndo: true})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = Play(context.Background(), e, strings.NewReader("s\n\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No clue in sight here.")
	assert.Contains(t, out.String(), "You did not collect any clue.")
	assert.Contains(t, out.String(), "No suspects registered.")
}
