package models

// ResourceType classifies a lesson resource.
type ResourceType string

const (
	ResourceText         ResourceType = "text"
	ResourceSkill        ResourceType = "skill"
	ResourcePresentation ResourceType = "presentation"
)

// Resource is a single learning material attached to a lesson.
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ResourceType `json:"type"`
	Content     string       `json:"content"`
	URL         string       `json:"url,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

// Lesson is a study unit grouping resources under a module label.
type Lesson struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Module    string     `json:"module"`
	Image     string     `json:"image"`
	Resources []Resource `json:"resources"`
}

// FindLessonByID returns the lesson with the given id, or nil.
func FindLessonByID(lessons []Lesson, id string) *Lesson {
	for i := range lessons {
		if lessons[i].ID == id {
			return &lessons[i]
		}
	}
	return nil
}

// ChatMessage is one turn of an assistant conversation. Kept in memory
// only; conversations are not persisted.
type ChatMessage struct {
	ID   string `json:"id"`
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}
