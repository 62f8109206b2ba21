package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/questlog/internal/models"
)

// CreateEvent validates and persists a new open event. Any event still
// open in the session is closed first, using the new event's start time
// as the boundary, so at most one event per session is ever open. The
// close-then-insert sequence runs in a single transaction so concurrent
// creates cannot both skip the close step.
func (s *Store) CreateEvent(sessionID string, tag models.EventTag, description string) (*models.Event, error) {
	if sessionID == "" {
		return nil, &models.ValidationError{Field: "session", Reason: "must not be empty"}
	}
	if !models.IsEventTag(string(tag)) {
		return nil, &models.ValidationError{Field: "tag", Reason: "unknown event tag"}
	}
	if err := models.ValidateDescription(description); err != nil {
		return nil, err
	}

	event := models.Event{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Tag:         tag,
		Timestamp:   time.Now(),
		Description: description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Entity: "session", ID: sessionID}
			}
			return err
		}

		// Close every open event, not just the newest one. Legacy or
		// corrupted data can hold more than one open event; creating a
		// new one heals that.
		if err := tx.Model(&models.Event{}).
			Where("session_id = ? AND end_timestamp IS NULL", sessionID).
			Update("end_timestamp", event.Timestamp).Error; err != nil {
			return err
		}

		return tx.Create(&event).Error
	})
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
		return nil, &models.StorageError{Op: "create event", Err: err}
	}

	s.broker.publish(tableEvents, sessionID)
	return &event, nil
}

// GetEvent retrieves an event by ID
func (s *Store) GetEvent(id string) (*models.Event, error) {
	var event models.Event
	err := s.db.First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "event", ID: id}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get event", Err: err}
	}
	return &event, nil
}

// CloseEvent marks an event finished as of now. Closing an event that is
// already closed is a no-op: the first end timestamp wins and the derived
// duration never changes afterwards.
func (s *Store) CloseEvent(id string) (*models.Event, error) {
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, err
	}
	if !event.Open() {
		return event, nil
	}

	now := time.Now()
	event.EndTimestamp = &now
	if err := s.db.Model(&models.Event{}).Where("id = ?", id).
		Update("end_timestamp", now).Error; err != nil {
		return nil, &models.StorageError{Op: "close event", Err: err}
	}

	s.broker.publish(tableEvents, event.SessionID)
	return event, nil
}

// DeleteEvent removes a single event. Deleting an absent event is
// treated as success.
func (s *Store) DeleteEvent(id string) error {
	event, err := s.GetEvent(id)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	if err := s.db.Delete(&models.Event{}, "id = ?", id).Error; err != nil {
		return &models.StorageError{Op: "delete event", Err: err}
	}

	s.broker.publish(tableEvents, event.SessionID)
	return nil
}

// DeleteSessionEvents removes every event of a session. The session
// itself is untouched.
func (s *Store) DeleteSessionEvents(sessionID string) error {
	if err := s.db.Where("session_id = ?", sessionID).Delete(&models.Event{}).Error; err != nil {
		return &models.StorageError{Op: "delete session events", Err: err}
	}

	s.broker.publish(tableEvents, sessionID)
	return nil
}

// Events returns all events of a session, newest first
func (s *Store) Events(sessionID string) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Where("session_id = ?", sessionID).
		Order("timestamp DESC").
		Find(&events).Error
	if err != nil {
		return nil, &models.StorageError{Op: "list events", Err: err}
	}
	return events, nil
}

// OpenEvent returns the session's currently open event, or nil if every
// event is closed
func (s *Store) OpenEvent(sessionID string) (*models.Event, error) {
	var event models.Event
	err := s.db.Where("session_id = ? AND end_timestamp IS NULL", sessionID).
		Order("timestamp DESC").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get open event", Err: err}
	}
	return &event, nil
}
