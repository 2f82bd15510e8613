package lazyvideo

import (
	"testing"

	"github.com/spurwing-main/lazyloadvideo/dom"
)

func elementWith(attrs map[string]string) *dom.Element {
	doc := dom.NewDocument()
	el := doc.CreateElement("video")
	el.SetAttribute(AttrMarker, attrs[AttrMarker])
	for k, v := range attrs {
		el.SetAttribute(k, v)
	}
	return el
}

func TestResolve_Defaults(t *testing.T) {
	cfg := Resolve(elementWith(nil))

	if !cfg.Lazy {
		t.Error("Lazy should default to true")
	}
	if cfg.Margin != DefaultMargin {
		t.Errorf("Expected margin %q, got %q", DefaultMargin, cfg.Margin)
	}
	if cfg.Threshold != 0 {
		t.Errorf("Expected threshold 0, got %v", cfg.Threshold)
	}
	if !cfg.PauseOnHidden || !cfg.ResumeOnReenter {
		t.Error("PauseOnHidden and ResumeOnReenter should default to true")
	}
	if cfg.PauseOnPageHidden {
		t.Error("PauseOnPageHidden should default to false")
	}
	if cfg.Preload != "none" {
		t.Errorf("Expected preload 'none', got %q", cfg.Preload)
	}
	if cfg.Triggers.Any() {
		t.Error("No triggers should be configured by default")
	}
	if cfg.AutoMute {
		t.Error("AutoMute should be false without triggers")
	}
}

func TestResolve_EagerMarkerDisablesLazy(t *testing.T) {
	cfg := Resolve(elementWith(map[string]string{AttrMarker: MarkerEager}))
	if cfg.Lazy {
		t.Error("Marker value 'eager' should disable lazy mode")
	}
}

func TestResolve_TriggerTokens(t *testing.T) {
	tests := []struct {
		input string
		want  Triggers
	}{
		{"", Triggers{}},
		{"load", Triggers{OnLoad: true}},
		{"visible hover", Triggers{OnVisible: true, OnHover: true}},
		{"visible,hover", Triggers{OnVisible: true, OnHover: true}},
		{"visible, parent-hover", Triggers{OnVisible: true, OnParentHover: true}},
		{"LOAD Visible", Triggers{OnLoad: true, OnVisible: true}},
		{"bogus visible nonsense", Triggers{OnVisible: true}},
		{"bogus", Triggers{}},
	}
	for _, tt := range tests {
		cfg := Resolve(elementWith(map[string]string{AttrTriggers: tt.input}))
		if cfg.Triggers != tt.want {
			t.Errorf("Triggers(%q) = %+v, want %+v", tt.input, cfg.Triggers, tt.want)
		}
	}
}

func TestResolve_AutoMuteInference(t *testing.T) {
	// Any autoplay-capable trigger implies muting.
	cfg := Resolve(elementWith(map[string]string{AttrTriggers: "hover"}))
	if !cfg.AutoMute {
		t.Error("AutoMute should be inferred from configured triggers")
	}

	// Explicit override wins in both directions.
	cfg = Resolve(elementWith(map[string]string{AttrTriggers: "hover", AttrMuted: "false"}))
	if cfg.AutoMute {
		t.Error("Explicit mute override should win over inference")
	}
	cfg = Resolve(elementWith(map[string]string{AttrMuted: "true"}))
	if !cfg.AutoMute {
		t.Error("Explicit mute should apply without triggers")
	}
	cfg = Resolve(elementWith(map[string]string{AttrMuted: ""}))
	if !cfg.AutoMute {
		t.Error("Bare mute attribute should mean true")
	}
}

func TestResolve_ThresholdAndPreloadValidation(t *testing.T) {
	cfg := Resolve(elementWith(map[string]string{
		AttrThreshold: "0.5",
		AttrPreload:   "metadata",
	}))
	if cfg.Threshold != 0.5 {
		t.Errorf("Expected threshold 0.5, got %v", cfg.Threshold)
	}
	if cfg.Preload != "metadata" {
		t.Errorf("Expected preload 'metadata', got %q", cfg.Preload)
	}

	cfg = Resolve(elementWith(map[string]string{
		AttrThreshold: "1.5",
		AttrPreload:   "everything",
	}))
	if cfg.Threshold != 0 {
		t.Errorf("Out-of-range threshold should fall back to 0, got %v", cfg.Threshold)
	}
	if cfg.Preload != "none" {
		t.Errorf("Unknown preload should fall back to 'none', got %q", cfg.Preload)
	}
}

func TestResolve_BooleanAttributes(t *testing.T) {
	cfg := Resolve(elementWith(map[string]string{
		AttrPauseHidden:     "false",
		AttrResume:          "0",
		AttrPausePageHidden: "",
	}))
	if cfg.PauseOnHidden {
		t.Error("pause-hidden=false should disable PauseOnHidden")
	}
	if cfg.ResumeOnReenter {
		t.Error("resume=0 should disable ResumeOnReenter")
	}
	if !cfg.PauseOnPageHidden {
		t.Error("Bare pause-page-hidden attribute should enable it")
	}
}

func TestResolve_IsWholesale(t *testing.T) {
	el := elementWith(map[string]string{AttrTriggers: "hover", AttrMargin: "10px"})
	first := Resolve(el)

	el.RemoveAttribute(AttrMargin)
	el.SetAttribute(AttrTriggers, "visible")
	second := Resolve(el)

	if second.Margin != DefaultMargin {
		t.Error("Re-resolution should not inherit the previous margin")
	}
	if second.Triggers.OnHover || !second.Triggers.OnVisible {
		t.Error("Re-resolution should reflect only current attributes")
	}

	// The earlier record is unaffected.
	if !first.Triggers.OnHover || first.Margin != "10px" {
		t.Error("Config records must be immutable")
	}
}
