// Package console plays an investigation over plain line-oriented input and
// output, one token per line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/navigator"
	"github.com/tatianab/detective-quest/internal/verdict"
)

type printer struct {
	w       io.Writer
	heading lipgloss.Style
	room    lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500")),
		room:    r.NewStyle().Bold(true),
	}
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Play runs exploration, the summary and the accusation. Input running out
// during exploration ends it like the exit token; during the accusation it
// counts as no accusation.
func Play(ctx context.Context, e *engine.Engine, in io.Reader, out io.Writer) (verdict.Result, error) {
	p := newPrinter(out)
	lines := bufio.NewScanner(in)

	p.printf("%s\n", p.heading.Render("=== "+e.Case().Title+" ==="))
	if e.SupportsUndo() {
		p.printf("Commands: e (left), d (right), b (back), s (stop exploring).\n")
	} else {
		p.printf("Commands: e (left), d (right), s (stop exploring).\n")
	}

	arrival := e.Start(ctx)
	p.arrival(ctx, e, arrival)
	for !e.Done() {
		p.options(e)
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return verdict.Result{}, err
			}
			p.printf("\nInput closed. Exploration ended.\n")
			break
		}
		next, err := e.Step(ctx, lines.Text())
		if err != nil {
			p.printf("Cannot do that: %s.\n", navigator.Reason(err))
			if e.Done() {
				p.printf("You are stuck here. Exploration ended.\n")
			}
			continue
		}
		if next == nil {
			p.printf("Exploration ended by the player.\n")
			break
		}
		p.arrival(ctx, e, *next)
	}

	p.summary(e.Summary())

	p.printf("\nName the suspect you accuse (leave blank to accuse no one): ")
	accused := ""
	if lines.Scan() {
		accused = lines.Text()
	} else if err := lines.Err(); err != nil {
		return verdict.Result{}, err
	}

	result := e.Accuse(ctx, accused)
	p.result(result)
	return result, nil
}

func (p *printer) arrival(ctx context.Context, e *engine.Engine, a navigator.Arrival) {
	p.printf("\nYou are in: %s\n", p.room.Render(a.Room.Name))
	if text, err := e.Narrate(ctx, a); err == nil && text != "" {
		p.printf("%s\n", text)
	}

	if a.Clue == nil {
		p.printf("No clue in sight here.\n")
	} else {
		switch a.Clue.Kind {
		case navigator.SightingNew:
			p.printf("New clue found: %q\n", a.Clue.Text)
		default:
			p.printf("Already collected: %q (count %d)\n", a.Clue.Text, a.Clue.Count)
		}
		if a.Clue.Suspect != "" {
			p.printf("-> This clue points to: %s\n", a.Clue.Suspect)
		} else {
			p.printf("-> This clue points to: unknown\n")
		}
	}

	if a.Final {
		p.printf("There are no more paths to follow. Exploration ended.\n")
	}
}

func (p *printer) options(e *engine.Engine) {
	ex := e.Exits()
	p.printf("\nWhere to?\n")
	if ex.Left != "" {
		p.printf(" - (e) Go to %s\n", ex.Left)
	}
	if ex.Right != "" {
		p.printf(" - (d) Go to %s\n", ex.Right)
	}
	if ex.Back != "" {
		p.printf(" - (b) Back to %s\n", ex.Back)
	}
	p.printf(" - (s) Stop exploring\n")
	p.printf("Choice: ")
}

func (p *printer) summary(s engine.Summary) {
	p.printf("\n%s\n", p.heading.Render("========= INVESTIGATION SUMMARY ========="))
	if len(s.Clues) == 0 {
		p.printf("You did not collect any clue.\n")
	} else {
		p.printf("Collected clues:\n")
		for _, c := range s.Clues {
			suspect := c.Suspect
			if suspect == "" {
				suspect = "(none)"
			}
			p.printf(" - %q (collected %d time(s)) => points to: %s\n", c.Text, c.Count, suspect)
		}
	}

	if len(s.Suspects) == 0 {
		p.printf("No suspects registered.\n")
		return
	}
	p.printf("\nKnown suspects:\n")
	for i, name := range s.Suspects {
		p.printf(" %d) %s\n", i+1, name)
	}
}

func (p *printer) result(r verdict.Result) {
	switch r.Outcome {
	case verdict.OutcomeNoAccusation:
		p.printf("\nNo accusation made. Investigation closed.\n")
	case verdict.OutcomeSupported:
		p.printf("\nClues pointing to %q: %d\n", r.Accused, r.Count)
		p.printf("Accusation supported: there is enough evidence to arrest %s.\n", r.Accused)
	case verdict.OutcomeUnsupported:
		p.printf("\nClues pointing to %q: %d\n", r.Accused, r.Count)
		p.printf("Accusation unsupported: not enough clues to blame %s.\n", r.Accused)
	}
}
