package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/detective-quest/internal/navigator"
)

//go:embed prompts/describe_room.txt
var describeRoomPrompt string

var describeRoomTmpl = template.Must(template.New("describe_room").Parse(describeRoomPrompt))

// RoomScene is what the narrator is told about an arrival.
type RoomScene struct {
	CaseTitle string
	Room      string
	Clue      string
	Exits     navigator.Exits
}

// Narrator adds flavour text to arrivals. It never sees suspects, so it
// cannot give the case away.
type Narrator interface {
	DescribeRoom(ctx context.Context, scene RoomScene) (string, error)
	Close() error
}

// GeminiNarrator narrates with a Gemini model.
type GeminiNarrator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiNarrator(ctx context.Context, apiKey string) (*GeminiNarrator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	return &GeminiNarrator{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiNarrator) Close() error {
	return g.client.Close()
}

func (g *GeminiNarrator) DescribeRoom(ctx context.Context, scene RoomScene) (string, error) {
	prompt, err := renderScene(scene)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}

func renderScene(scene RoomScene) (string, error) {
	var buf bytes.Buffer
	if err := describeRoomTmpl.Execute(&buf, scene); err != nil {
		return "", err
	}
	return buf.String(), nil
}
