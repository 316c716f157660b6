// Package clarify holds the single-slot clarification state machine: between
// the extraction service asking a disambiguating question and the user's next
// reply, exactly one draft extraction is parked here.
package clarify

import (
	"fmt"
	"strings"

	"github.com/smkwon/lifeone/internal/models"
)

// Fixed option sets the extraction service asks with.
var (
	// MeridiemOptions disambiguates an ambiguous clock hour.
	MeridiemOptions = []string{"오전", "오후"}

	// CategoryOptions disambiguates which collection a parse belongs to.
	CategoryOptions = []string{"연락처", "일정", "가계부", "메모"}
)

// Pending is the cached tuple awaiting disambiguation: the original raw input
// and the draft extraction it produced.
type Pending struct {
	Input models.Input
	Draft models.ExtractionBatch
}

// Resolution is a consumed clarification: the rewritten (or filtered) draft,
// the original input for the history log, and a confirmation message for the
// chat.
type Resolution struct {
	Batch   models.ExtractionBatch
	Input   models.Input
	Message string
}

// Machine is the two-state session machine: IDLE when pending is nil,
// AWAITING_DISAMBIGUATION otherwise.
type Machine struct {
	pending *Pending
}

// New returns an idle machine.
func New() *Machine { return &Machine{} }

// Awaiting reports whether a draft is parked.
func (m *Machine) Awaiting() bool { return m.pending != nil }

// Begin parks a draft. A draft already parked is replaced: by the time a new
// ambiguous result arrives the old draft has been consumed or abandoned.
func (m *Machine) Begin(input models.Input, draft models.ExtractionBatch) {
	m.pending = &Pending{Input: input, Draft: draft}
}

// Reset unconditionally returns to idle, discarding any draft. Called on
// resolution errors so a stale draft is never retried.
func (m *Machine) Reset() {
	m.pending = nil
}

// Resolve consumes the pending draft if reply is one of the fixed options.
// The second return is false when the machine is idle or the reply is not an
// option; in that case the reply is an ordinary new turn and the caller
// discards the draft via Reset once its own extraction call completes.
func (m *Machine) Resolve(reply string) (Resolution, bool) {
	if m.pending == nil {
		return Resolution{}, false
	}
	reply = strings.TrimSpace(reply)

	switch reply {
	case "오전", "오후":
		res := m.resolveMeridiem(reply)
		m.pending = nil
		return res, true
	case "연락처", "일정", "가계부", "메모":
		res := m.resolveCategory(reply)
		m.pending = nil
		return res, true
	default:
		return Resolution{}, false
	}
}

// resolveMeridiem rewrites every draft schedule hour per 12-hour-clock
// semantics: PM adds 12 except for 12 itself, AM maps 12 to 00.
func (m *Machine) resolveMeridiem(reply string) Resolution {
	draft := m.pending.Draft
	var message string

	for i := range draft.Schedule {
		item := &draft.Schedule[i]
		if item.Time == "" {
			continue
		}
		hour, minute, ok := splitTime(item.Time)
		if !ok || hour < 1 || hour > 12 {
			continue
		}
		original := hour
		if reply == "오후" && hour != 12 {
			hour += 12
		} else if reply == "오전" && hour == 12 {
			hour = 0
		}
		item.Time = fmt.Sprintf("%02d:%s", hour, minute)
		message = fmt.Sprintf("%q 일정이 %s %d시 (%s)로 저장되었습니다.",
			item.Title, reply, original, item.Time)
	}

	return Resolution{Batch: draft, Input: m.pending.Input, Message: message}
}

// resolveCategory filters the draft down to only the chosen record type.
func (m *Machine) resolveCategory(reply string) Resolution {
	filtered := models.ExtractionBatch{}
	switch reply {
	case "연락처":
		filtered.Contacts = m.pending.Draft.Contacts
	case "일정":
		filtered.Schedule = m.pending.Draft.Schedule
	case "가계부":
		filtered.Expenses = m.pending.Draft.Expenses
	case "메모":
		filtered.Diary = m.pending.Draft.Diary
	}
	return Resolution{
		Batch:   filtered,
		Input:   m.pending.Input,
		Message: reply + "에 저장했습니다.",
	}
}

func splitTime(t string) (hour int, minute string, ok bool) {
	parts := strings.SplitN(t, ":", 2)
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return 0, "", false
	}
	minute = "00"
	if len(parts) == 2 && parts[1] != "" {
		minute = parts[1]
	}
	return hour, minute, true
}
