package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/guard"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/models"
	"github.com/istatata/bayan/internal/vault"
)

// LessonService owns the in-memory lesson collection. Same locking
// discipline as UserService: one lock around read-modify-save.
type LessonService struct {
	vault *vault.Vault
	gate  *guard.Gate
	log   logging.Logger
	now   func() time.Time

	mu      sync.Mutex
	lessons []models.Lesson
}

func NewLessonService(v *vault.Vault, gate *guard.Gate, log logging.Logger, now func() time.Time) *LessonService {
	if now == nil {
		now = time.Now
	}
	return &LessonService{vault: v, gate: gate, log: log, now: now}
}

// Init loads the lesson collection, falling back to the seed dataset.
func (s *LessonService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vault.Load(ctx, vault.KeyLessons, &s.lessons, models.SeedLessons())
}

// Lessons returns a deep copy of the lesson collection.
func (s *LessonService) Lessons() []models.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLessons(s.lessons)
}

// AddLesson creates a lesson with no resources. An empty image gets the
// default cover.
func (s *LessonService) AddLesson(ctx context.Context, title, module, image string) (models.Lesson, error) {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return models.Lesson{}, err
	}

	if image == "" {
		image = models.DefaultLessonImage
	}
	lesson := models.Lesson{
		ID:        uuid.NewString(),
		Title:     title,
		Module:    module,
		Image:     image,
		Resources: []models.Resource{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(copyLessons(s.lessons), lesson)
	if err := s.vault.Save(ctx, vault.KeyLessons, next); err != nil {
		return models.Lesson{}, fmt.Errorf("add lesson: %w", err)
	}
	s.lessons = next

	s.log.Info(ctx, "lesson added", "lesson", lesson.ID)
	return lesson, nil
}

// DeleteLesson removes a lesson and all its resources.
func (s *LessonService) DeleteLesson(ctx context.Context, id string) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if models.FindLessonByID(s.lessons, id) == nil {
		return common.ErrNotFound
	}

	next := make([]models.Lesson, 0, len(s.lessons)-1)
	for _, l := range copyLessons(s.lessons) {
		if l.ID != id {
			next = append(next, l)
		}
	}

	if err := s.vault.Save(ctx, vault.KeyLessons, next); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	s.lessons = next

	s.log.Info(ctx, "lesson deleted", "lesson", id)
	return nil
}

// AddResource attaches a resource to a lesson, stamping id and creation
// date. Only presentation resources keep their URL.
func (s *LessonService) AddResource(ctx context.Context, lessonID string, r models.Resource) (models.Resource, error) {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return models.Resource{}, err
	}

	r.ID = uuid.NewString()
	r.CreatedAt = s.now().Format("2006-01-02")
	if r.Type != models.ResourcePresentation {
		r.URL = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyLessons(s.lessons)
	lesson := models.FindLessonByID(next, lessonID)
	if lesson == nil {
		return models.Resource{}, common.ErrNotFound
	}
	lesson.Resources = append(lesson.Resources, r)

	if err := s.vault.Save(ctx, vault.KeyLessons, next); err != nil {
		return models.Resource{}, fmt.Errorf("add resource: %w", err)
	}
	s.lessons = next
	return r, nil
}

// UpdateResource replaces an existing resource in place, keeping its id
// and creation date.
func (s *LessonService) UpdateResource(ctx context.Context, lessonID string, r models.Resource) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyLessons(s.lessons)
	lesson := models.FindLessonByID(next, lessonID)
	if lesson == nil {
		return common.ErrNotFound
	}

	found := false
	for i := range lesson.Resources {
		if lesson.Resources[i].ID == r.ID {
			r.CreatedAt = lesson.Resources[i].CreatedAt
			lesson.Resources[i] = r
			found = true
			break
		}
	}
	if !found {
		return common.ErrNotFound
	}

	if err := s.vault.Save(ctx, vault.KeyLessons, next); err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	s.lessons = next
	return nil
}

// DeleteResource removes a single resource from a lesson.
func (s *LessonService) DeleteResource(ctx context.Context, lessonID, resourceID string) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyLessons(s.lessons)
	lesson := models.FindLessonByID(next, lessonID)
	if lesson == nil {
		return common.ErrNotFound
	}

	resources := make([]models.Resource, 0, len(lesson.Resources))
	found := false
	for _, res := range lesson.Resources {
		if res.ID == resourceID {
			found = true
			continue
		}
		resources = append(resources, res)
	}
	if !found {
		return common.ErrNotFound
	}
	lesson.Resources = resources

	if err := s.vault.Save(ctx, vault.KeyLessons, next); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	s.lessons = next
	return nil
}

// Replace swaps the whole lesson collection (import path).
func (s *LessonService) Replace(ctx context.Context, lessons []models.Lesson) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyLessons(lessons)
	if err := s.vault.Save(ctx, vault.KeyLessons, next); err != nil {
		return fmt.Errorf("replace lessons: %w", err)
	}
	s.lessons = next
	return nil
}

func copyLessons(lessons []models.Lesson) []models.Lesson {
	out := make([]models.Lesson, len(lessons))
	copy(out, lessons)
	for i := range out {
		out[i].Resources = append([]models.Resource(nil), out[i].Resources...)
	}
	return out
}
