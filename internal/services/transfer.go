package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/istatata/bayan/internal/guard"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/models"
	"github.com/istatata/bayan/internal/session"
	"github.com/istatata/bayan/internal/storage"
)

// ErrImportMalformed is returned when the import document itself cannot be
// parsed. Individual collections that are not array-shaped are skipped
// rather than failing the whole import.
var ErrImportMalformed = errors.New("import document malformed")

// ExportVersion tags export documents for forward compatibility.
const ExportVersion = "1.0"

// ExportMetadata describes who produced an export and when.
type ExportMetadata struct {
	Version    string `json:"version"`
	ExportDate string `json:"exportDate"`
	ExportedBy string `json:"exportedBy"`
}

// ExportDocument is the interchange format for full-dataset transfer.
// Imported records are trusted admin input: only the top-level shape is
// validated, not individual records.
type ExportDocument struct {
	Users    []models.User   `json:"users"`
	Lessons  []models.Lesson `json:"lessons"`
	Metadata ExportMetadata  `json:"metadata"`
}

// ImportResult reports which collections an import replaced.
type ImportResult struct {
	UsersReplaced   bool
	LessonsReplaced bool
}

// TransferService exports and imports the full dataset and performs the
// factory reset. Every operation is admin-gated.
type TransferService struct {
	users   *UserService
	lessons *LessonService
	gate    *guard.Gate
	session *session.Store
	kv      storage.Repository
	log     logging.Logger
	now     func() time.Time
}

func NewTransferService(users *UserService, lessons *LessonService, gate *guard.Gate, sess *session.Store, kv storage.Repository, log logging.Logger, now func() time.Time) *TransferService {
	if now == nil {
		now = time.Now
	}
	return &TransferService{users: users, lessons: lessons, gate: gate, session: sess, kv: kv, log: log, now: now}
}

// Export snapshots both collections into an ExportDocument.
func (s *TransferService) Export(ctx context.Context) (*ExportDocument, error) {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}

	exportedBy := "unknown"
	if snap := s.session.Current(); snap.User != nil {
		exportedBy = snap.User.Name
	}

	return &ExportDocument{
		Users:   s.users.Users(),
		Lessons: s.lessons.Lessons(),
		Metadata: ExportMetadata{
			Version:    ExportVersion,
			ExportDate: s.now().UTC().Format(time.RFC3339),
			ExportedBy: exportedBy,
		},
	}, nil
}

// rawDocument defers collection parsing so each can be validated
// independently.
type rawDocument struct {
	Users   json.RawMessage `json:"users"`
	Lessons json.RawMessage `json:"lessons"`
}

// Import replaces each collection wholesale, independently, and only when
// it is array-shaped. A collection that is missing or malformed is left
// untouched; partial imports of a single collection are never attempted.
func (s *TransferService) Import(ctx context.Context, data []byte) (ImportResult, error) {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return ImportResult{}, err
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}

	var result ImportResult

	var users []models.User
	if isJSONArray(doc.Users) && json.Unmarshal(doc.Users, &users) == nil {
		if err := s.users.Replace(ctx, users); err != nil {
			return result, err
		}
		result.UsersReplaced = true
	}

	var lessons []models.Lesson
	if isJSONArray(doc.Lessons) && json.Unmarshal(doc.Lessons, &lessons) == nil {
		if err := s.lessons.Replace(ctx, lessons); err != nil {
			return result, err
		}
		result.LessonsReplaced = true
	}

	s.log.Info(ctx, "import finished",
		"users_replaced", result.UsersReplaced,
		"lessons_replaced", result.LessonsReplaced)
	return result, nil
}

// Reset wipes the durable store and reinstates the seed dataset. The
// session is closed as part of the wipe: the refresh credential does not
// survive a factory reset.
func (s *TransferService) Reset(ctx context.Context) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	// Re-persist the seeds so the next start does not depend on the
	// absent-blob fallback.
	if err := s.users.Replace(ctx, models.SeedUsers()); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := s.lessons.Replace(ctx, models.SeedLessons()); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	if err := s.session.Logout(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	s.log.Info(ctx, "factory reset")
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
