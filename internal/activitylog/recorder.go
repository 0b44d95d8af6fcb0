package activitylog

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/models"
)

// ===============================
// Events
// ===============================

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ===============================
// Subject contracts
// ===============================

// Subject is implemented by every model that wants its lifecycle recorded.
// LogName is the kind tag ("item", "user", ...) used as subject_type and as
// the default log_name.
type Subject interface {
	LogName() string
	SubjectKey() uint
}

// Describer overrides the default "<event> <kind>" description.
type Describer interface {
	LogDescription(event string) string
}

// Tagger overrides the log_name tag without changing the subject kind.
type Tagger interface {
	LogTag() string
}

// PropertiesBuilder overrides the default properties payload. attrs and old
// are the snapshots the recorder would have stored.
type PropertiesBuilder interface {
	LogProperties(event string, attrs, old map[string]any) map[string]any
}

// ===============================
// Recorder
// ===============================

// Recorder writes activity entries. Writes go through the *gorm.DB handed in
// per call so they join the caller's transaction: if the entry cannot be
// persisted the surrounding mutation fails with it.
type Recorder struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Created(tx *gorm.DB, causer *models.User, s Subject) error {
	return r.Log(tx, causer, s, EventCreated)
}

func (r *Recorder) Updated(tx *gorm.DB, causer *models.User, s Subject, old map[string]any) error {
	entry, err := buildEntry(causer, s, EventUpdated, old)
	if err != nil {
		return err
	}
	return tx.Create(entry).Error
}

func (r *Recorder) Deleted(tx *gorm.DB, causer *models.User, s Subject) error {
	return r.Log(tx, causer, s, EventDeleted)
}

// Log is the manual trigger for non-lifecycle events.
func (r *Recorder) Log(tx *gorm.DB, causer *models.User, s Subject, event string) error {
	entry, err := buildEntry(causer, s, event, nil)
	if err != nil {
		return err
	}
	return tx.Create(entry).Error
}

// ForSubject returns every entry recorded for the given instance, newest first.
func (r *Recorder) ForSubject(ctx context.Context, s Subject) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ?", s.LogName(), s.SubjectKey()).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ===============================
// Entry building
// ===============================

func buildEntry(causer *models.User, s Subject, event string, old map[string]any) (*models.ActivityLog, error) {
	attrs, err := Snapshot(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.LogName(), err)
	}

	props := map[string]any{"attributes": attrs}
	if event == EventUpdated && old != nil {
		props["old"] = old
	}
	if pb, ok := s.(PropertiesBuilder); ok {
		props = pb.LogProperties(event, attrs, old)
	}

	raw, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}

	description := event + " " + s.LogName()
	if d, ok := s.(Describer); ok {
		description = d.LogDescription(event)
	}

	logName := s.LogName()
	if t, ok := s.(Tagger); ok {
		logName = t.LogTag()
	}

	subjectType := s.LogName()
	subjectID := s.SubjectKey()

	entry := &models.ActivityLog{
		LogName:     logName,
		Description: description,
		SubjectType: &subjectType,
		SubjectID:   &subjectID,
		Properties:  datatypes.JSON(raw),
	}

	if causer != nil {
		causerType := causer.LogName()
		causerID := causer.ID
		entry.CauserType = &causerType
		entry.CauserID = &causerID
	}

	return entry, nil
}

// Snapshot converts a model into its attribute map using the same json tags
// the API exposes, so hidden fields (password hashes) never reach the log.
func Snapshot(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, err
	}

	// Associations are logged by id only; embedded structs would bloat the
	// payload and leak preloaded relations.
	for k, val := range attrs {
		if _, ok := val.(map[string]any); ok {
			delete(attrs, k)
		}
		if _, ok := val.([]any); ok {
			delete(attrs, k)
		}
	}

	return attrs, nil
}
