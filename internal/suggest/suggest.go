// Package suggest calls the Gemini API to produce a multi-day itinerary
// suggestion for a trip. Suggestions are purely advisory: nothing in this
// package writes to the store, and a suggestion only becomes real activities
// when the user re-enters it through the normal activity-creation path.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when the model cannot be reached or its output
// cannot be parsed. Handlers should map this to HTTP 503; the rest of the
// application keeps working without suggestions.
var ErrUnavailable = errors.New("suggestions unavailable")

// SuggestionDay is one day of a suggested itinerary.
// Day is the positional day number the suggestion targets, 1-indexed.
type SuggestionDay struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// Suggestion is a structured multi-day itinerary suggestion.
type Suggestion struct {
	Destination string          `json:"destination"`
	Days        []SuggestionDay `json:"days"`
}

// Generator produces itinerary suggestions. The Gemini-backed implementation
// is GeminiClient; handler tests substitute a stub.
type Generator interface {
	Suggest(ctx context.Context, destination string, durationDays int, interests []string) (Suggestion, error)
}

// GeminiClient is the Gemini-backed Generator.
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient constructs a GeminiClient. model may be empty, in which
// case a current flash model is used.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

// Suggest asks the model for a day-by-day plan and parses its JSON reply.
// Any transport or parse failure comes back wrapped in ErrUnavailable.
func (c *GeminiClient) Suggest(ctx context.Context, destination string, durationDays int, interests []string) (Suggestion, error) {
	if c.apiKey == "" {
		return Suggestion{}, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: create client: %v", ErrUnavailable, err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"

	res, err := model.GenerateContent(ctx, genai.Text(prompt(destination, durationDays, interests)))
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: generate: %v", ErrUnavailable, err)
	}

	var text strings.Builder
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		for _, part := range res.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}

	suggestion, err := parseSuggestion(text.String())
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	suggestion.Destination = destination
	return suggestion, nil
}

// prompt builds the fixed structured-output prompt.
func prompt(destination string, durationDays int, interests []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest a %d-day itinerary for a trip to %s.", durationDays, destination)
	if len(interests) > 0 {
		fmt.Fprintf(&b, " The traveller is interested in: %s.", strings.Join(interests, ", "))
	}
	b.WriteString(` Reply with JSON only, in this shape:
{"days":[{"day":1,"title":"short day title","activities":["activity description"]}]}
Cover every day from 1 to the trip length.`)
	return b.String()
}

// parseSuggestion extracts the JSON object from the model's reply.
// Models sometimes wrap JSON in code fences or prose despite instructions,
// so everything outside the outermost braces is discarded.
func parseSuggestion(text string) (Suggestion, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Suggestion{}, errors.New("no JSON object in model reply")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &s); err != nil {
		return Suggestion{}, fmt.Errorf("decode model reply: %v", err)
	}
	if len(s.Days) == 0 {
		return Suggestion{}, errors.New("model reply contained no days")
	}
	return s, nil
}
