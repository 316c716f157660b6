package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smkwon/lifeone/internal/extract"
	"github.com/smkwon/lifeone/internal/models"
)

// ExportDocument serializes the whole state as a backup file. The filename is
// derived from the current date.
func (a *Assistant) ExportDocument() ([]byte, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := json.MarshalIndent(a.snapshot(), "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("export state: %w", err)
	}
	filename := "lifeone_backup_" + a.now().Format("2006-01-02") + ".json"
	return doc, filename, nil
}

// ImportDocument merges a backup file into the current state. Records already
// present (by identity key) are skipped, so re-importing the same backup is a
// no-op.
func (a *Assistant) ImportDocument(ctx context.Context, data []byte) (ImportResult, error) {
	snap, err := models.ParseSnapshot(data)
	if err != nil {
		return ImportResult{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	stats := a.coord.ImportMerge(snap)
	sessions := a.chats.Merge(snap.ChatSessions)

	a.runBudgetCheck()
	a.persist(ctx)

	a.logger.Info("backup imported", "records", stats.Total(), "sessions", sessions)
	return ImportResult{Stats: stats, Sessions: sessions, Applied: true}, nil
}

// ImportKakao runs a KakaoTalk chat export through the extraction service and
// reconciles whatever it finds. The returned result carries the open conflict
// decision when reconciliation suspended.
func (a *Assistant) ImportKakao(ctx context.Context, fileName, raw string) (ImportResult, error) {
	prompt := extract.KakaoExtractionPrompt(extract.PrepareKakaoLog(raw))

	a.mu.Lock()
	snapshot := extract.BuildContext(
		a.store.Contacts(), a.store.Schedule(), a.store.Expenses(), a.store.Diary(), a.now())
	a.mu.Unlock()

	resp, err := a.extractor.Process(ctx, nil, prompt, nil, snapshot)
	if err != nil {
		return ImportResult{}, fmt.Errorf("kakao extraction: %w", err)
	}
	if resp.Extraction.Empty() {
		return ImportResult{}, nil
	}

	return a.reconcileImport(ctx, resp.Extraction, fileName)
}

// ImportVCard parses a .vcf file and reconciles the contacts it contains.
func (a *Assistant) ImportVCard(ctx context.Context, fileName, content string) (ImportResult, error) {
	contacts := extract.ParseVCard(content)
	if len(contacts) == 0 {
		return ImportResult{}, nil
	}
	batch := models.ExtractionBatch{Contacts: contacts}
	return a.reconcileImport(ctx, batch, fileName)
}

func (a *Assistant) reconcileImport(ctx context.Context, batch models.ExtractionBatch, fileName string) (ImportResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	input := models.Input{Text: "Imported Data (" + fileName + ")"}
	outcome, err := a.coord.Reconcile(batch, input)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Applied: outcome.Applied}
	if outcome.Decision != nil {
		conflictsDetected.Inc()
		conflicts := outcome.Decision.Conflicts
		result.Conflicts = &conflicts
	} else {
		countBatch(batch)
		if len(batch.Expenses) > 0 {
			a.runBudgetCheck()
		}
	}

	a.persist(ctx)
	return result, nil
}
