package source

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/bodul/xwplayer/puzzle"
)

const generatePrompt = `You are an expert crossword puzzle architect for %[1]s speakers.
Create a valid crossword puzzle layout.

Difficulty: %[2]s.
Grid Size: %[3]dx%[3]d.
Target Word Count: Approx %[4]d words.

CRITICAL RULES:
1. All words MUST intersect correctly. The letter at the intersection point must be the same for both the Across and Down words.
2. All words must be valid %[1]s words, written without spaces.
3. Words must be placed within the 0 to %[5]d index range.
4. Provide a variety of "Smart Hint" types:
   - standard: Direct definition.
   - compound: two hints joined with "+" (e.g. Bird + Fruit).
   - metaphor: abstract riddles.
   - encrypted: numbers representing alphabet positions.
   - cultural: movies, history, famous figures.
   - math: an arithmetic expression whose answer is a number word.

Output JSON ONLY matching the schema.`

var tracer = otel.Tracer("github.com/bodul/xwplayer/source")

var puzzleSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":      {Type: genai.TypeString, Description: "A creative title for the crossword theme"},
		"dimensions": {Type: genai.TypeInteger, Description: "The grid size (e.g. 9, 12, or 15)"},
		"words": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text":      {Type: genai.TypeString, Description: "The word answer. No spaces."},
					"clue":      {Type: genai.TypeString, Description: "The hint/clue for the word."},
					"row":       {Type: genai.TypeInteger, Description: "0-based starting row index"},
					"col":       {Type: genai.TypeInteger, Description: "0-based starting column index"},
					"direction": {Type: genai.TypeString, Enum: []string{string(puzzle.Across), string(puzzle.Down)}},
					"clueType": {
						Type: genai.TypeString,
						Enum: []string{
							string(puzzle.KindStandard), string(puzzle.KindMath), string(puzzle.KindMetaphor),
							string(puzzle.KindCompound), string(puzzle.KindEncrypted), string(puzzle.KindCultural),
						},
						Description: "The type of smart hint used.",
					},
				},
				Required: []string{"text", "clue", "row", "col", "direction", "clueType"},
			},
		},
	},
	Required: []string{"title", "words", "dimensions"},
}

// Generate asks the model for a new puzzle of tier d.
func (g *Gemini) Generate(ctx context.Context, d puzzle.Difficulty) (*puzzle.Descriptor, error) {
	tier, ok := TierFor(d)
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", d)
	}

	ctx, span := tracer.Start(ctx, "gemini.Generate", trace.WithAttributes(
		attribute.String("difficulty", string(d)),
		attribute.String("model", g.modelName),
	))
	defer span.End()

	desc, err := g.generate(ctx, tier)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("words", len(desc.Words)))
	return desc, nil
}

func (g *Gemini) generate(ctx context.Context, tier Tier) (*puzzle.Descriptor, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		genai.Text(g.prompt(tier)),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(g.temperature),
			ResponseMIMEType: "application/json",
			ResponseSchema:   puzzleSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseDescriptor(resp.Text(), tier)
}

func (g *Gemini) prompt(tier Tier) string {
	return fmt.Sprintf(generatePrompt, g.language, tier.Difficulty, tier.Size, tier.Words, tier.Size-1)
}

// parseDescriptor decodes a model response. The grid size is always the
// tier's, whatever the model claims.
func parseDescriptor(text string, tier Tier) (*puzzle.Descriptor, error) {
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}

	var desc puzzle.Descriptor
	if err := json.Unmarshal([]byte(text), &desc); err != nil {
		return nil, fmt.Errorf("parse puzzle JSON: %w\nraw response: %s", err, text)
	}
	desc.Dimensions = tier.Size

	if err := Check(&desc); err != nil {
		return nil, err
	}
	return &desc, nil
}
