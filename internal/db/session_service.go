package db

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/questlog/internal/models"
)

// CreateSession validates and persists a new session
func (s *Store) CreateSession(name string, sessionType models.SessionType) (*models.Session, error) {
	if err := models.ValidateSessionName(name); err != nil {
		return nil, err
	}
	if !models.IsSessionType(string(sessionType)) {
		return nil, &models.ValidationError{Field: "type", Reason: "unknown session type"}
	}

	session := models.Session{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		Type: sessionType,
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, &models.StorageError{Op: "create session", Err: err}
	}

	s.broker.publish(tableSessions, "")
	return &session, nil
}

// GetSession retrieves a session by ID. The type is normalized on read so
// callers never observe an unknown value.
func (s *Store) GetSession(id string) (*models.Session, error) {
	var session models.Session
	err := s.db.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get session", Err: err}
	}

	session.Type = models.NormalizeSessionType(string(session.Type))
	return &session, nil
}

// Sessions returns all sessions, newest first, with types normalized
func (s *Store) Sessions() ([]models.Session, error) {
	var sessions []models.Session
	if err := s.db.Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, &models.StorageError{Op: "list sessions", Err: err}
	}

	for i := range sessions {
		sessions[i].Type = models.NormalizeSessionType(string(sessions[i].Type))
	}
	return sessions, nil
}

// RenameSession updates a session's name and refreshes its updated_at
func (s *Store) RenameSession(id, name string) (*models.Session, error) {
	if err := models.ValidateSessionName(name); err != nil {
		return nil, err
	}

	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	session.Name = strings.TrimSpace(name)
	session.UpdatedAt = time.Now()
	if err := s.db.Save(session).Error; err != nil {
		return nil, &models.StorageError{Op: "rename session", Err: err}
	}

	s.broker.publish(tableSessions, "")
	return session, nil
}

// DeleteSession removes a session and every event that references it.
// Events go first, inside one transaction, so a reader never observes an
// orphaned event. Deleting an absent session is treated as success. If
// the deleted session was active, the pointer is cleared.
func (s *Store) DeleteSession(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Session{}, "id = ?", id).Error
	})
	if err != nil {
		return &models.StorageError{Op: "delete session", Err: err}
	}

	active, err := s.state.ActiveSessionID()
	if err != nil {
		return err
	}
	if active == id {
		if err := s.state.Clear(); err != nil {
			return err
		}
	}

	s.broker.publish(tableEvents, id)
	s.broker.publish(tableSessions, "")
	return nil
}

// SetActiveSession records a session as active in the durable pointer.
// The session must exist.
func (s *Store) SetActiveSession(id string) error {
	if _, err := s.GetSession(id); err != nil {
		return err
	}
	return s.state.SetActiveSessionID(id)
}

// ActiveSession restores the active session from the durable pointer.
// A stale pointer (session since deleted) is ignored, not an error; nil
// means no session is active.
func (s *Store) ActiveSession() (*models.Session, error) {
	id, err := s.state.ActiveSessionID()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	session, err := s.GetSession(id)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}
