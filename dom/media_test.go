package dom

import (
	"errors"
	"testing"
)

func videoDoc(t *testing.T) (*Document, *VideoElement) {
	t.Helper()
	doc := NewDocument()
	root := doc.CreateElement("html")
	doc.AsNode().AppendChild(root.AsNode())
	el := doc.CreateElement("video")
	root.AsNode().AppendChild(el.AsNode())
	return doc, el.AsVideo()
}

func TestAsVideo(t *testing.T) {
	doc := NewDocument()
	if doc.CreateElement("div").AsVideo() != nil {
		t.Error("div should have no video view")
	}
	if doc.CreateElement("video").AsVideo() == nil {
		t.Error("video should have a video view")
	}
}

func TestVideoElement_LoadSelectsElementSrc(t *testing.T) {
	doc, v := videoDoc(t)
	v.Element().SetAttribute("src", "clip.mp4")

	v.Load()
	if v.CurrentSrc() != "clip.mp4" {
		t.Errorf("Expected currentSrc 'clip.mp4', got '%s'", v.CurrentSrc())
	}
	if v.LoadCount() != 1 {
		t.Errorf("Expected 1 load, got %d", v.LoadCount())
	}

	var ready int
	v.Element().Events().AddEventListener(EventCanPlay, func(*Event) { ready++ })
	doc.Flush()
	if ready != 1 {
		t.Errorf("Expected 1 ready signal after flush, got %d", ready)
	}
	v.Load()
	doc.Flush()
	if ready != 2 {
		t.Errorf("Expected a ready signal per load, got %d", ready)
	}
}

func TestVideoElement_LoadFallsBackToSourceDescriptors(t *testing.T) {
	doc, v := videoDoc(t)
	first := doc.CreateElement("source")
	first.SetAttribute("src", "first.webm")
	second := doc.CreateElement("source")
	second.SetAttribute("src", "second.mp4")
	v.Element().AsNode().AppendChild(first.AsNode())
	v.Element().AsNode().AppendChild(second.AsNode())

	v.Load()
	if v.CurrentSrc() != "first.webm" {
		t.Errorf("Expected first descriptor to win, got '%s'", v.CurrentSrc())
	}
}

func TestVideoElement_LoadWithoutSources(t *testing.T) {
	doc, v := videoDoc(t)
	var ready int
	v.Element().Events().AddEventListener(EventCanPlay, func(*Event) { ready++ })

	v.Load()
	doc.Flush()
	if v.CurrentSrc() != "" {
		t.Errorf("Expected empty currentSrc, got '%s'", v.CurrentSrc())
	}
	if ready != 0 {
		t.Error("No ready signal expected without sources")
	}
}

func TestVideoElement_PlayHonorsAutoplayPolicy(t *testing.T) {
	doc, v := videoDoc(t)
	doc.SetAutoplayPolicy(func(video *VideoElement) error {
		if !video.Muted() {
			return errors.New("NotAllowedError")
		}
		return nil
	})

	var rejected error
	v.Play().Then(nil, func(err error) { rejected = err })
	doc.Flush()
	if rejected == nil {
		t.Fatal("Unmuted play should have been rejected")
	}
	if !v.Paused() {
		t.Error("Rejected play should leave the element paused")
	}

	v.SetMuted(true)
	var resolved bool
	v.Play().Then(func() { resolved = true }, nil)
	doc.Flush()
	if !resolved {
		t.Fatal("Muted play should have resolved")
	}
	if v.Paused() {
		t.Error("Granted play should unpause the element")
	}
	if v.PlayRequests() != 2 {
		t.Errorf("Expected 2 play requests, got %d", v.PlayRequests())
	}
}

func TestVideoElement_PauseAndHints(t *testing.T) {
	_, v := videoDoc(t)
	if !v.Paused() {
		t.Error("Elements start paused")
	}
	v.Play()
	v.Pause()
	if !v.Paused() {
		t.Error("Pause did not stop playback")
	}

	v.SetPreload("metadata")
	if v.Preload() != "metadata" {
		t.Errorf("Expected preload 'metadata', got '%s'", v.Preload())
	}
	v.SetPlaysInline(true)
	if !v.PlaysInline() {
		t.Error("PlaysInline hint not set")
	}
	if !v.Element().HasAttribute("playsinline") {
		t.Error("PlaysInline should surface as an attribute")
	}
}
