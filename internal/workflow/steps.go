package workflow

import (
	"context"
	"time"

	"webmark/internal/bookmark"
	"webmark/internal/logging"
	"webmark/internal/note"
	"webmark/internal/step"
)

// itemState accumulates the intermediate products of one item's run as its
// steps execute in order.
type itemState struct {
	url     string
	mode    step.Mode
	addedAt time.Time

	content  string
	search   string
	record   bookmark.Record
	notePath string
}

func newItemState(url string, mode step.Mode, addedAt time.Time) *itemState {
	st := &itemState{
		url:     url,
		mode:    mode,
		addedAt: addedAt,
		record:  bookmark.Record{CreatedAt: addedAt, URL: url},
	}
	if mode == step.ModeSimple {
		// No generation step will supply a title, so derive one from the URL.
		st.record.Title = note.TitleFromURL(url)
	}
	return st
}

type stepFunc func(ctx context.Context, st *itemState) error

func (e *Engine) stepFuncFor(id string) stepFunc {
	switch id {
	case step.GetWebContent:
		return e.stepGetWebContent
	case step.SearchRelated:
		return e.stepSearchRelated
	case step.GenerateInfo:
		return e.stepGenerateInfo
	case step.TakeScreenshot:
		return e.stepTakeScreenshot
	case step.CreateNote:
		return e.stepCreateNote
	}
	return nil
}

func (e *Engine) stepGetWebContent(ctx context.Context, st *itemState) error {
	content, err := e.svc.Reader.ExtractContent(ctx, st.url)
	if err != nil {
		return err
	}
	st.content = content
	return nil
}

func (e *Engine) stepSearchRelated(ctx context.Context, st *itemState) error {
	st.search = e.svc.Reader.SearchRelated(ctx, st.url)
	return nil
}

func (e *Engine) stepGenerateInfo(ctx context.Context, st *itemState) error {
	raw, err := e.svc.Generator.GenerateStructuredInfo(ctx, st.url, st.content, st.search)
	if err != nil {
		return err
	}
	rec, err := bookmark.Parse(raw)
	if err != nil {
		return err
	}
	// The model echoes the URL back; the one the user supplied stays
	// authoritative.
	rec.URL = st.url
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = st.addedAt
	}
	st.record = rec
	return nil
}

func (e *Engine) stepTakeScreenshot(ctx context.Context, st *itemState) error {
	png, err := e.svc.Screenshots.Capture(ctx, st.url)
	if err == nil {
		var name string
		name, err = e.svc.Notes.PlaceScreenshot(st.record, png)
		if err == nil {
			st.record.ScreenshotFile = name
			return nil
		}
	}

	if e.cfg.Screenshot.Optional {
		logging.WithContext(ctx, e.logger).WarnContext(ctx, "screenshot skipped, note will have no embed",
			logging.Error(err),
		)
		st.record.ScreenshotFile = ""
		return nil
	}
	return err
}

func (e *Engine) stepCreateNote(ctx context.Context, st *itemState) error {
	body := note.BuildDocument(st.record)
	path, err := e.svc.Notes.WriteNote(st.record, body)
	if err != nil {
		return err
	}
	st.notePath = path
	return nil
}
