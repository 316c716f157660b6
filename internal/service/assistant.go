// Package service wires the record store, reconciliation, clarification,
// notifications and chat log into one serialized assistant. Every public
// method is safe for concurrent use; internally a single mutex keeps the
// domain state a single logical actor, released only around the extraction
// call itself.
package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smkwon/lifeone/internal/chat"
	"github.com/smkwon/lifeone/internal/clarify"
	"github.com/smkwon/lifeone/internal/dedupe"
	"github.com/smkwon/lifeone/internal/extract"
	"github.com/smkwon/lifeone/internal/models"
	"github.com/smkwon/lifeone/internal/notify"
	"github.com/smkwon/lifeone/internal/reconcile"
	"github.com/smkwon/lifeone/internal/records"
	"github.com/smkwon/lifeone/internal/storage"
)

var (
	// ErrTurnInFlight rejects a second message for a session whose previous
	// turn is still processing.
	ErrTurnInFlight = errors.New("a turn is already in flight for this session")

	// ErrNotFound is returned for operations on unknown record ids.
	ErrNotFound = errors.New("record not found")
)

// TurnResult is what one conversational turn produced: the (possibly newly
// created) session id, the model's reply message, and the open conflict
// decision when reconciliation suspended.
type TurnResult struct {
	SessionID string             `json:"sessionId"`
	Reply     models.ChatMessage `json:"reply"`
	Conflicts *dedupe.Result     `json:"conflicts,omitempty"`
}

// ImportResult reports what a file import did. Exactly one of the fields is
// meaningful depending on the import kind.
type ImportResult struct {
	Stats    reconcile.ImportStats `json:"stats"`
	Sessions int                   `json:"sessions"`

	Conflicts *dedupe.Result `json:"conflicts,omitempty"`
	Applied   bool           `json:"applied"`
}

// Assistant is the application core. Construct with New, then Start once to
// restore persisted state before serving.
type Assistant struct {
	mu       sync.Mutex
	inflight map[string]bool

	store   *records.Store
	trash   *records.Trash
	coord   *reconcile.Coordinator
	machine *clarify.Machine
	engine  *notify.Engine
	chats   *chat.Log

	extractor extract.Service
	storage   storage.Store

	logger *slog.Logger
	now    func() time.Time
}

// New creates an assistant over the given persistence and extraction
// collaborators.
func New(store storage.Store, extractor extract.Service, logger *slog.Logger) *Assistant {
	recs := records.New()
	trash := records.NewTrash()
	return &Assistant{
		inflight:  map[string]bool{},
		store:     recs,
		trash:     trash,
		coord:     reconcile.New(recs, trash),
		machine:   clarify.New(),
		engine:    notify.New(),
		chats:     chat.NewLog(),
		extractor: extractor,
		storage:   store,
		logger:    logger,
		now:       time.Now,
	}
}

// Start restores persisted state, sweeps expired trash, and runs the daily
// calendar check. A corrupted state document is logged and discarded rather
// than blocking startup.
func (a *Assistant) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, ok, err := a.storage.Load(ctx)
	if err != nil {
		return err
	}
	if ok {
		snap, err := models.ParseSnapshot(doc)
		if err != nil {
			a.logger.Error("persisted state is unreadable, starting fresh", "error", err)
		} else {
			a.store.Load(snap)
			a.trash.Load(snap.Trash)
			a.coord.LoadHistory(snap.History)
			a.chats.Load(snap.ChatSessions, snap.ActiveSessionID)
			a.engine.Load(snap)
		}
	}

	if removed := a.trash.SweepExpired(a.now()); removed > 0 {
		a.logger.Info("expired trash swept", "removed", removed)
	}
	a.runDailyCheck()
	a.runBudgetCheck()

	a.persist(ctx)
	return nil
}

// HandleMessage processes one conversational turn. While a clarification is
// pending, a reply matching one of the offered options is consumed locally
// without an extraction call; anything else is a fresh turn and discards the
// parked draft once the extraction call completes. A canceled context leaves
// all state untouched, the parked draft included.
func (a *Assistant) HandleMessage(ctx context.Context, sessionID, text string, image *extract.Image) (TurnResult, error) {
	a.mu.Lock()
	if a.inflight[sessionID] {
		a.mu.Unlock()
		return TurnResult{}, ErrTurnInFlight
	}
	a.inflight[sessionID] = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		delete(a.inflight, sessionID)
		a.mu.Unlock()
	}()

	userMsg := models.ChatMessage{
		ID:   uuid.NewString(),
		Role: models.RoleUser,
		Text: text,
	}
	if image != nil {
		userMsg.ImageURL = dataURL(image)
	}

	a.mu.Lock()
	if a.machine.Awaiting() {
		if res, ok := a.machine.Resolve(text); ok {
			defer a.mu.Unlock()
			return a.finishClarified(ctx, sessionID, userMsg, res)
		}
	}

	realID, history := a.chats.Begin(sessionID, userMsg)
	snapshot := extract.BuildContext(
		a.store.Contacts(), a.store.Schedule(), a.store.Expenses(), a.store.Diary(), a.now())
	a.mu.Unlock()

	resp, err := a.extractor.Process(ctx, history, text, image, snapshot)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			// Abandoned turn: nothing is consumed, nothing is persisted.
			return TurnResult{}, ctx.Err()
		}
		a.machine.Reset()
		reply := models.ChatMessage{
			ID:   uuid.NewString(),
			Role: models.RoleModel,
			Text: "오류가 발생했습니다: " + err.Error(),
		}
		a.chats.Append(realID, reply)
		a.logger.Error("extraction call failed", "session", realID, "error", err)
		a.persist(ctx)
		return TurnResult{SessionID: realID, Reply: reply}, nil
	}

	// The extraction call returned, so the previous draft (if any) is spent.
	a.machine.Reset()

	if resp.ClarificationNeeded {
		reply := models.ChatMessage{
			ID:                   uuid.NewString(),
			Role:                 models.RoleModel,
			Text:                 resp.Answer,
			ClarificationOptions: resp.ClarificationOptions,
		}
		a.chats.Append(realID, reply)
		a.machine.Begin(models.Input{Text: text, ImageName: imageName(image), ImageURL: userMsg.ImageURL}, resp.Extraction)
		a.persist(ctx)
		return TurnResult{SessionID: realID, Reply: reply}, nil
	}

	reply := models.ChatMessage{
		ID:         uuid.NewString(),
		Role:       models.RoleModel,
		Text:       resp.Answer,
		WebSources: resp.WebSources,
	}
	a.chats.Append(realID, reply)

	if userMsg.ImageURL != "" {
		for i := range resp.Extraction.Expenses {
			if resp.Extraction.Expenses[i].ImageURL == "" {
				resp.Extraction.Expenses[i].ImageURL = userMsg.ImageURL
			}
		}
	}

	result := TurnResult{SessionID: realID, Reply: reply}
	expensesTouched := false

	if !resp.Extraction.Empty() {
		input := models.Input{Text: text, ImageName: imageName(image), ImageURL: userMsg.ImageURL}
		outcome, err := a.coord.Reconcile(resp.Extraction, input)
		if err != nil {
			a.logger.Error("reconcile rejected batch", "error", err)
		} else if outcome.Decision != nil {
			conflictsDetected.Inc()
			conflicts := outcome.Decision.Conflicts
			result.Conflicts = &conflicts
		} else {
			countBatch(resp.Extraction)
			expensesTouched = len(resp.Extraction.Expenses) > 0
		}
	}
	if !resp.Modifications.Empty() {
		a.coord.ApplyModifications(resp.Modifications)
		expensesTouched = expensesTouched || len(resp.Modifications.Expenses) > 0
	}
	if !resp.Deletions.Empty() {
		a.coord.ApplyDeletions(resp.Deletions)
		expensesTouched = expensesTouched || len(resp.Deletions.Expenses) > 0
	}

	if expensesTouched {
		a.runBudgetCheck()
	}
	a.persist(ctx)
	return result, nil
}

// finishClarified lands a disambiguated draft without another extraction
// call. Called with the mutex held.
func (a *Assistant) finishClarified(ctx context.Context, sessionID string, userMsg models.ChatMessage, res clarify.Resolution) (TurnResult, error) {
	realID, _ := a.chats.Begin(sessionID, userMsg)

	outcome, err := a.coord.Reconcile(res.Batch, res.Input)
	if err != nil {
		return TurnResult{}, err
	}

	text := res.Message
	if text == "" {
		text = "요청하신 내용을 저장했습니다."
	}
	reply := models.ChatMessage{
		ID:   uuid.NewString(),
		Role: models.RoleModel,
		Text: text,
	}
	a.chats.Append(realID, reply)

	result := TurnResult{SessionID: realID, Reply: reply}
	if outcome.Decision != nil {
		conflictsDetected.Inc()
		conflicts := outcome.Decision.Conflicts
		result.Conflicts = &conflicts
	} else {
		countBatch(res.Batch)
		if len(res.Batch.Expenses) > 0 {
			a.runBudgetCheck()
		}
	}

	a.persist(ctx)
	return result, nil
}

// ResolveConflict closes the pending conflict decision.
func (a *Assistant) ResolveConflict(ctx context.Context, choice reconcile.Choice) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	pending := a.coord.Pending()
	if err := a.coord.Resolve(choice); err != nil {
		return err
	}
	if choice != reconcile.Cancel {
		countBatch(pending.Batch)
	}
	a.runBudgetCheck()
	a.persist(ctx)
	return nil
}

// PendingConflicts returns the open conflict decision's collisions, if any.
func (a *Assistant) PendingConflicts() *dedupe.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	if d := a.coord.Pending(); d != nil {
		conflicts := d.Conflicts
		return &conflicts
	}
	return nil
}

// DailyCheck runs the calendar notification scan; invoked on a timer by the
// server, it emits nothing when the scan already ran today.
func (a *Assistant) DailyCheck(ctx context.Context) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	emitted := a.runDailyCheck()
	a.persist(ctx)
	return emitted
}

// runDailyCheck and runBudgetCheck run the notification scans and feed the
// emission counter. Called with the mutex held.
func (a *Assistant) runDailyCheck() int {
	emitted := a.engine.RunDailyCheck(a.store.Schedule())
	notificationsEmitted.Add(float64(emitted))
	return emitted
}

func (a *Assistant) runBudgetCheck() {
	notificationsEmitted.Add(float64(a.engine.CheckBudget(a.store.Expenses())))
}

// persist writes the whole state document. Persistence is best-effort: a
// failed save is logged and the in-memory state keeps serving.
func (a *Assistant) persist(ctx context.Context) {
	doc, err := json.Marshal(a.snapshot())
	if err != nil {
		a.logger.Error("state document marshal failed", "error", err)
		return
	}
	if err := a.storage.Save(context.WithoutCancel(ctx), doc); err != nil {
		a.logger.Error("state save failed", "error", err)
	}
}

// snapshot assembles the persisted document. Called with the mutex held.
func (a *Assistant) snapshot() models.Snapshot {
	snap := models.Snapshot{
		Contacts:           a.store.Contacts(),
		Schedule:           a.store.Schedule(),
		ScheduleCategories: a.store.Categories(),
		Expenses:           a.store.Expenses(),
		Diary:              a.store.Diary(),
		History:            a.coord.History(),
		Trash:              a.trash.Items(),
		ChatSessions:       a.chats.Sessions(),
		ActiveSessionID:    a.chats.ActiveID(),
	}
	a.engine.Fill(&snap)
	return snap
}

func dataURL(image *extract.Image) string {
	return "data:" + image.MIME + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}

func imageName(image *extract.Image) string {
	if image == nil {
		return ""
	}
	return image.Name
}
