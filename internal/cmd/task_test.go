package cmd

import (
	"strings"
	"testing"

	"github.com/Green254/taskpulse-cli/internal/api"
)

func TestTaskListOutputRenderText(t *testing.T) {
	out := taskListOutput{
		Tasks: []api.Task{
			{ID: 1, Title: "Restock supplies", Status: "pending", Priority: "high", AssigneeName: "Grace"},
			{ID: 2, Title: "Close weekly report", Status: "completed"},
		},
		Total: 9,
	}

	var b strings.Builder
	if err := out.RenderText(&b); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	text := b.String()

	if !strings.Contains(text, "[ ] #1") {
		t.Errorf("pending task should render an empty checkbox: %q", text)
	}
	if !strings.Contains(text, "[x] #2") {
		t.Errorf("completed task should render a checked box: %q", text)
	}
	if !strings.Contains(text, "(high)") {
		t.Errorf("priority missing: %q", text)
	}
	if !strings.Contains(text, "-> Grace") {
		t.Errorf("assignee missing: %q", text)
	}
	if !strings.Contains(text, "2 of 9 tasks") {
		t.Errorf("summary line missing: %q", text)
	}
}

func TestTaskListOutputRenderTextEmpty(t *testing.T) {
	var b strings.Builder
	if err := (taskListOutput{}).RenderText(&b); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if !strings.Contains(b.String(), "No tasks.") {
		t.Errorf("expected empty-list message, got %q", b.String())
	}
}
