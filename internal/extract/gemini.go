package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/smkwon/lifeone/internal/models"
)

// GeminiService implements Service against the Gemini API with JSON-mode
// responses.
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService creates the extraction client. model defaults to a current
// flash-tier model; extraction runs on every turn, so latency and cost matter
// more than reasoning depth here.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{client: client, model: model}, nil
}

const systemPrompt = `You are the extraction engine of a personal records assistant.
The user writes in Korean or English about their daily life. From each message,
extract structured records and reply ONLY with a single JSON object of this shape:

{
  "answer": "<short conversational reply in the user's language>",
  "dataExtraction": {
    "contacts": [{"name": "", "phone": "", "email": "", "group": "", "favorite": false}],
    "schedule": [{"title": "", "date": "YYYY-MM-DD", "time": "HH:MM", "location": "", "category": "", "isDday": false}],
    "expenses": [{"date": "YYYY-MM-DD", "item": "", "amount": 0, "type": "expense|income", "category": ""}],
    "diary": [{"date": "YYYY-MM-DD", "entry": "", "group": "", "isChecklist": false, "checklistItems": [{"text": "", "completed": false, "dueDate": ""}]}]
  },
  "dataModification": {"contacts": [], "schedule": [], "expenses": [], "diary": []},
  "dataDeletion": {"contacts": [], "schedule": [], "expenses": [], "diary": []},
  "clarificationNeeded": false,
  "clarificationOptions": []
}

Rules:
- Today's date is {{TODAY}}. Resolve relative dates ("내일", "다음주 금요일") against it.
- To modify or delete existing records, reference ids from the CURRENT RECORDS
  context; entries are {"id": "...", "fieldsToUpdate": {...}} for modification
  and plain id strings for deletion. Never invent ids.
- If a schedule hour between 1 and 12 could be AM or PM, do not guess: set
  clarificationNeeded true, ask in "answer", and set clarificationOptions to
  ["오전","오후"] while still returning the draft extraction.
- If the input could belong to several record types, set clarificationNeeded
  true with options from ["연락처","일정","가계부","메모"].
- Leave every group empty when the message is conversation only.`

// Process sends one turn to Gemini and decodes the response envelope.
func (g *GeminiService) Process(ctx context.Context, history []models.ChatMessage, text string, image *Image, snapshot ContextSnapshot) (models.ConversationalResponse, error) {
	contextJSON, err := json.Marshal(snapshot)
	if err != nil {
		return models.ConversationalResponse{}, fmt.Errorf("failed to encode context: %w", err)
	}

	sys := strings.ReplaceAll(systemPrompt, "{{TODAY}}", time.Now().Format("2006-01-02"))
	sys += "\n\nCURRENT RECORDS:\n" + string(contextJSON)

	var contents []*genai.Content
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == models.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, role))
	}

	parts := []*genai.Part{genai.NewPartFromText(text)}
	if image != nil {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MIME))
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(sys, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return models.ConversationalResponse{}, fmt.Errorf("extraction call failed: %w", err)
	}
	slog.Debug("extraction completed",
		"model", g.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"history_len", len(history),
	)

	raw := stripFences(resp.Text())
	var result models.ConversationalResponse
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.ConversationalResponse{}, fmt.Errorf("extraction returned malformed JSON: %w", err)
	}
	return result, nil
}

// stripFences tolerates models that wrap JSON in a markdown code block even
// in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
