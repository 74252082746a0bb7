package cli

import (
	"context"
	"fmt"
	"os"
)

// Ask sends a question to the tutoring assistant and prints the answer.
func (a *App) Ask(ctx context.Context) error {
	prompt, err := GetSimpleText(a.reader, "Your question", os.Stdout)
	if err != nil {
		return err
	}
	lessonCtx, err := GetSimpleText(a.reader, "Lesson context (optional)", os.Stdout)
	if err != nil {
		return err
	}

	answer, err := a.tutor.Ask(ctx, prompt, lessonCtx)
	if err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn(answer)
	return nil
}

// History prints the assistant conversation recorded in this process.
func (a *App) History(ctx context.Context) error {
	messages := a.tutor.History()
	if len(messages) == 0 {
		printlnFn("No conversation yet.")
		return nil
	}
	for _, m := range messages {
		printlnFn(fmt.Sprintf("[%s] %s", m.Role, m.Text))
	}
	return nil
}
