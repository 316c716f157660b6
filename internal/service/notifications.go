package service

import (
	"context"
	"slices"

	"github.com/smkwon/lifeone/internal/models"
)

// Notifications returns undelivered alerts, newest first.
func (a *Assistant) Notifications() []models.AppNotification {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.engine.Notifications())
}

// AcknowledgeNotification consumes one alert and returns it so the caller can
// follow its deep link.
func (a *Assistant) AcknowledgeNotification(ctx context.Context, id string) (models.AppNotification, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, ok := a.engine.Acknowledge(id)
	if !ok {
		return models.AppNotification{}, ErrNotFound
	}
	a.persist(ctx)
	return n, nil
}

// ClearNotifications drops every undelivered alert.
func (a *Assistant) ClearNotifications(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.ClearAll()
	a.persist(ctx)
}

// NotificationSettings returns the current alert configuration.
func (a *Assistant) NotificationSettings() models.NotificationSettings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Settings()
}

// UpdateNotificationSettings replaces the alert configuration and re-evaluates
// the budget rule, since a new limit may cross a threshold immediately.
func (a *Assistant) UpdateNotificationSettings(ctx context.Context, s models.NotificationSettings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.UpdateSettings(s)
	a.runBudgetCheck()
	a.persist(ctx)
}
