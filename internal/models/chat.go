package models

// NewSessionID is the distinguished session id meaning "no session chosen
// yet"; the first message sent under it creates a real session.
const NewSessionID = "new"

// Chat message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one entry of a conversation.
type ChatMessage struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Text string `json:"text"`

	ImageURL string `json:"imageUrl,omitempty"`

	// ClarificationOptions is set on model messages that ask the user to
	// disambiguate; the UI renders them as quick-reply buttons.
	ClarificationOptions []string `json:"clarificationOptions,omitempty"`

	WebSources []WebSource `json:"webSearchSources,omitempty"`
}

// ChatSession is an ordered conversation log.
type ChatSession struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Messages []ChatMessage `json:"messages"`
}
