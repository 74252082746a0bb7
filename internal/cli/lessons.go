package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/istatata/bayan/internal/models"
)

// ListLessons prints every lesson with its resources. Reading is not
// gated; content is visible to anonymous visitors as well.
func (a *App) ListLessons(ctx context.Context) error {
	for _, l := range a.lessons.Lessons() {
		printlnFn(fmt.Sprintf("[%s] %s: %s (%d resources)", l.ID, l.Module, l.Title, len(l.Resources)))
		for _, r := range l.Resources {
			printlnFn(fmt.Sprintf("    [%s] (%s) %s: %s", r.ID, r.Type, r.Title, r.Description))
		}
	}
	return nil
}

// AddLesson prompts for lesson fields and creates it.
func (a *App) AddLesson(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Lesson title", os.Stdout)
	if err != nil {
		return err
	}
	module, err := GetSimpleText(a.reader, "Module label (e.g. M01)", os.Stdout)
	if err != nil {
		return err
	}
	image, err := GetSimpleText(a.reader, "Cover image URL (empty for default)", os.Stdout)
	if err != nil {
		return err
	}

	lesson, err := a.lessons.AddLesson(ctx, title, module, image)
	if err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn(fmt.Sprintf("Lesson %s created.", lesson.ID))
	return nil
}

// DeleteLesson prompts for a lesson id and removes the whole unit.
func (a *App) DeleteLesson(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Lesson id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.lessons.DeleteLesson(ctx, id); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn("Lesson deleted.")
	return nil
}

// AddResource prompts for resource fields and attaches it to a lesson.
func (a *App) AddResource(ctx context.Context) error {
	lessonID, err := GetSimpleText(a.reader, "Lesson id", os.Stdout)
	if err != nil {
		return err
	}
	r, err := a.promptResource()
	if err != nil {
		return err
	}

	created, err := a.lessons.AddResource(ctx, lessonID, r)
	if err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn(fmt.Sprintf("Resource %s added.", created.ID))
	return nil
}

// EditResource prompts for new field values of an existing resource.
func (a *App) EditResource(ctx context.Context) error {
	lessonID, err := GetSimpleText(a.reader, "Lesson id", os.Stdout)
	if err != nil {
		return err
	}
	resourceID, err := GetSimpleText(a.reader, "Resource id", os.Stdout)
	if err != nil {
		return err
	}
	r, err := a.promptResource()
	if err != nil {
		return err
	}
	r.ID = resourceID

	if err := a.lessons.UpdateResource(ctx, lessonID, r); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn("Resource updated.")
	return nil
}

// DeleteResource removes a single resource from a lesson.
func (a *App) DeleteResource(ctx context.Context) error {
	lessonID, err := GetSimpleText(a.reader, "Lesson id", os.Stdout)
	if err != nil {
		return err
	}
	resourceID, err := GetSimpleText(a.reader, "Resource id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.lessons.DeleteResource(ctx, lessonID, resourceID); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn("Resource deleted.")
	return nil
}

func (a *App) promptResource() (models.Resource, error) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return models.Resource{}, err
	}
	desc, err := GetSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return models.Resource{}, err
	}
	typ, err := GetSimpleText(a.reader, "Type (text/skill/presentation)", os.Stdout)
	if err != nil {
		return models.Resource{}, err
	}
	content, err := GetSimpleText(a.reader, "Content", os.Stdout)
	if err != nil {
		return models.Resource{}, err
	}

	r := models.Resource{
		Title:       title,
		Description: desc,
		Type:        models.ResourceType(typ),
		Content:     content,
	}
	if r.Type == models.ResourcePresentation {
		url, err := GetSimpleText(a.reader, "Presentation URL", os.Stdout)
		if err != nil {
			return models.Resource{}, err
		}
		r.URL = url
	}
	return r, nil
}
