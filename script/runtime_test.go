package script

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spurwing-main/lazyloadvideo/dom"
	"github.com/spurwing-main/lazyloadvideo/html"
	"github.com/spurwing-main/lazyloadvideo/lazyvideo"
)

func newRuntime(t *testing.T) (*Runtime, *dom.Document, *lazyvideo.LazyVideo) {
	t.Helper()
	doc, err := html.ParseString(`<html><body>
		<video id="clip" data-lazyvideo data-src="clip.mp4" data-lazyvideo-play="hover"></video>
		<div id="other"></div>
	</body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc.SetViewport(dom.Rect{Width: 1000, Height: 800})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lv := lazyvideo.New(doc, lazyvideo.WithLogger(logger))
	t.Cleanup(lv.Close)
	return New(doc, lv), doc, lv
}

func TestRuntime_AttachAndPlay(t *testing.T) {
	r, doc, lv := newRuntime(t)

	v, err := r.Run(`lazyvideo.attach("#clip")`)
	if err != nil {
		t.Fatalf("attach script failed: %v", err)
	}
	if v.ToBoolean() != true {
		t.Fatal("attach should report success")
	}

	el := doc.QuerySelector("#clip")
	if !lv.Managed(el) {
		t.Error("Script attach did not register the element")
	}

	if _, err := r.Run(`lazyvideo.play("#clip")`); err != nil {
		t.Fatalf("play script failed: %v", err)
	}
	if el.AsVideo().Paused() {
		t.Error("Script play did not start playback")
	}
	if _, err := r.Run(`lazyvideo.pause("#clip")`); err != nil {
		t.Fatalf("pause script failed: %v", err)
	}
	if !el.AsVideo().Paused() {
		t.Error("Script pause did not stop playback")
	}
}

func TestRuntime_AttachRejectsNonVideo(t *testing.T) {
	r, _, _ := newRuntime(t)
	v, err := r.Run(`lazyvideo.attach("#other")`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if v.ToBoolean() {
		t.Error("Attaching a div should report failure")
	}
}

func TestRuntime_AttachAllAndManaged(t *testing.T) {
	r, _, _ := newRuntime(t)
	v, err := r.Run(`lazyvideo.attachAll()`)
	if err != nil {
		t.Fatalf("attachAll failed: %v", err)
	}
	if v.ToInteger() != 1 {
		t.Errorf("Expected 1 attached element, got %v", v)
	}

	v, err = r.Run(`lazyvideo.managed("#clip")`)
	if err != nil {
		t.Fatalf("managed failed: %v", err)
	}
	if !v.ToBoolean() {
		t.Error("Element should report managed")
	}
}

func TestRuntime_DocumentAttributeMutationDrivesReload(t *testing.T) {
	r, doc, _ := newRuntime(t)
	if _, err := r.Run(`lazyvideo.attach("#clip")`); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if _, err := r.Run(`lazyvideo.play("#clip")`); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	// Scripts mutate the declarative contract through the document
	// global; the synchronizer reacts as with any other mutation.
	script := `
		var el = document.querySelector("#clip");
		el.setAttribute("data-src", "replacement.mp4");
		el.getAttribute("data-src");
	`
	v, err := r.Run(script)
	if err != nil {
		t.Fatalf("mutation script failed: %v", err)
	}
	if v.String() != "replacement.mp4" {
		t.Errorf("getAttribute returned %q", v.String())
	}
	if got := doc.QuerySelector("#clip").AsVideo().CurrentSrc(); got != "replacement.mp4" {
		t.Errorf("Expected reloaded source, got %q", got)
	}
}

func TestRuntime_QuerySelectorMiss(t *testing.T) {
	r, _, _ := newRuntime(t)
	v, err := r.Run(`document.querySelector("#missing")`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if v.Export() != nil {
		t.Errorf("Expected null, got %v", v)
	}
}

func TestRuntime_ScriptErrorSurfaces(t *testing.T) {
	r, _, _ := newRuntime(t)
	if _, err := r.Run(`lazyvideo.nope()`); err == nil {
		t.Error("Calling a missing function should error")
	}
}
