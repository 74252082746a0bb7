package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/istatata/bayan/internal/assistant"
	"github.com/istatata/bayan/internal/guard"
	"github.com/istatata/bayan/internal/models"
)

// TutorService relays questions to the assistant. Any authenticated user
// may ask; nothing the assistant returns touches persisted state, so the
// gate is used only as an authentication check. The conversation is kept
// in memory for the life of the process.
type TutorService struct {
	generator assistant.Generator
	gate      *guard.Gate

	mu       sync.Mutex
	messages []models.ChatMessage
}

func NewTutorService(g assistant.Generator, gate *guard.Gate) *TutorService {
	return &TutorService{generator: g, gate: gate}
}

// Ask sends a prompt (with optional lesson context) to the assistant and
// records both turns of the exchange.
func (s *TutorService) Ask(ctx context.Context, prompt, lessonContext string) (string, error) {
	if err := s.gate.Require(ctx, models.RoleAdmin, models.RoleTrainee); err != nil {
		return "", err
	}

	answer, err := s.generator.Generate(ctx, prompt, lessonContext)
	if err != nil {
		return "", fmt.Errorf("tutor: %w", err)
	}

	s.mu.Lock()
	s.messages = append(s.messages,
		models.ChatMessage{ID: uuid.NewString(), Role: "user", Text: prompt},
		models.ChatMessage{ID: uuid.NewString(), Role: "model", Text: answer},
	)
	s.mu.Unlock()

	return answer, nil
}

// History returns a copy of the conversation so far.
func (s *TutorService) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}
