// Package models defines the core domain models for LifeOne.
//
// # Record Types
//
// Five user-facing collections make up the personal store:
//   - Contact: people, keyed for duplicate detection by phone or name
//   - ScheduleCategory: color-coded calendar categories with a fixed sentinel
//   - ScheduleItem: dated events, optionally time-of-day and D-day flagged
//   - Expense: ledger entries (expense or income), integer amounts
//   - DiaryEntry: free-text memos or checklists; duplicates are allowed
//
// # Engine Types
//
// Around the records sit the types the reconciliation engine moves:
//   - ExtractionBatch / ModificationBatch / DeletionBatch: what the extraction
//     service hands back for one conversational turn
//   - ConversationalResponse: the full extraction-service reply envelope
//   - HistoryItem: append-only audit record of input -> created records
//   - TrashItem: soft-delete envelope with a 30-day lifetime
//   - ChatSession / ChatMessage: the conversation log
//   - AppNotification / NotificationSettings: derived alerts and their config
//   - Snapshot: the single JSON document the whole state persists as
//
// # Design Principles
//
//  1. Records are mutable in place; IDs (UUIDs) are assigned once and never reused.
//  2. Optional string fields use the empty string as "absent" so a partial JSON
//     update only touches the keys it carries.
//  3. JSON tags match the persisted document keys, so a snapshot written by one
//     version of the app loads in another.
package models
