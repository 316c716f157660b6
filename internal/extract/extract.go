// Package extract defines the contract with the extraction service — the
// external model call that turns free-form input into record batches — plus
// the context pruning sent along with it and the file-import preprocessors
// that produce extraction-shaped batches.
package extract

import (
	"context"

	"github.com/smkwon/lifeone/internal/models"
)

// Image is an optional attachment to a conversational turn.
type Image struct {
	Name string
	MIME string
	Data []byte
}

// Service is the extraction collaborator. Given the conversation so far, the
// new user text, an optional image and a pruned snapshot of current records,
// it returns the full response envelope. Implementations must tolerate any of
// the envelope's payload groups being empty, and must not mutate anything:
// reconciliation is the caller's job.
type Service interface {
	Process(ctx context.Context, history []models.ChatMessage, text string, image *Image, snapshot ContextSnapshot) (models.ConversationalResponse, error)
}
