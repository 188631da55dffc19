package main

import (
	"bytes"
	"strings"
	"testing"

	"webmark/internal/queue"
	"webmark/internal/step"
)

func TestPresenterRendersStepTransitions(t *testing.T) {
	q := queue.New()
	var buf bytes.Buffer
	pres := newPresenter(&buf, q)
	defer pres.close()

	q.Add("https://example.com/a", step.ModeSimple)
	q.Update(step.TakeScreenshot, step.StatusProcessing, 0)
	q.Update(step.TakeScreenshot, step.StatusCompleted, 0)
	q.Update(step.CreateNote, step.StatusProcessing, 0)
	q.Update(step.CreateNote, step.StatusFailed, 0)

	out := buf.String()
	requireContains(t, out, "[1/1] https://example.com/a")
	requireContains(t, out, renderStatusLine("Take screenshot", statusOK, "", false))
	requireContains(t, out, renderStatusLine("Create note", statusError, "failed, see log", false))

	if got := strings.Count(out, "https://example.com/a"); got != 1 {
		t.Fatalf("item header printed %d times, want 1", got)
	}
}

func TestPresenterSkipsProgressOnlyDeltas(t *testing.T) {
	q := queue.New()
	var buf bytes.Buffer
	pres := newPresenter(&buf, q)
	defer pres.close()

	q.Add("https://example.com/a", step.ModeFull)
	q.Update(step.GetWebContent, step.StatusProcessing, 0)
	before := buf.Len()
	q.SetProgress(step.GetWebContent, 42, 0)
	if buf.Len() != before {
		t.Fatalf("progress delta produced output: %q", buf.String()[before:])
	}
}

func TestPresenterStopsAfterClose(t *testing.T) {
	q := queue.New()
	var buf bytes.Buffer
	pres := newPresenter(&buf, q)

	q.Add("https://example.com/a", step.ModeSimple)
	q.Update(step.TakeScreenshot, step.StatusProcessing, 0)
	pres.close()
	before := buf.Len()
	q.Update(step.TakeScreenshot, step.StatusCompleted, 0)
	if buf.Len() != before {
		t.Fatalf("closed presenter still rendered: %q", buf.String()[before:])
	}
}
