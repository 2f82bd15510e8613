// Package lazyvideo attaches declarative lazy-loading and trigger-driven
// playback behavior to video elements in a live document tree. Elements
// opt in with the data-lazyvideo marker attribute; per-element data-
// attributes decide when bytes are fetched and when playback starts and
// stops. The package keeps its element-to-controller registry consistent
// as the tree mutates, with no imperative page code required.
package lazyvideo

import (
	"strconv"
	"strings"

	"github.com/spurwing-main/lazyloadvideo/dom"
)

// Attribute names forming the declarative contract. AttrMarker opts an
// element into management; AttrSrc holds the pending source reference on
// the video itself or on its <source> descriptors.
const (
	AttrMarker          = "data-lazyvideo"
	AttrSrc             = "data-src"
	AttrTriggers        = "data-lazyvideo-play"
	AttrHoverTarget     = "data-lazyvideo-hover-target"
	AttrMargin          = "data-lazyvideo-margin"
	AttrThreshold       = "data-lazyvideo-threshold"
	AttrPreload         = "data-lazyvideo-preload"
	AttrMuted           = "data-lazyvideo-muted"
	AttrPauseHidden     = "data-lazyvideo-pause-hidden"
	AttrResume          = "data-lazyvideo-resume"
	AttrPausePageHidden = "data-lazyvideo-pause-page-hidden"
	AttrDebug           = "data-lazyvideo-debug"
)

// MarkerEager is the marker value that disables lazy mode.
const MarkerEager = "eager"

// DefaultMargin is the viewport-observation margin used when
// AttrMargin is absent.
const DefaultMargin = "300px 0px"

// trackedAttributes is the attribute set the tree synchronizer reacts to.
var trackedAttributes = map[string]bool{
	AttrMarker:          true,
	AttrSrc:             true,
	AttrTriggers:        true,
	AttrHoverTarget:     true,
	AttrMargin:          true,
	AttrThreshold:       true,
	AttrPreload:         true,
	AttrMuted:           true,
	AttrPauseHidden:     true,
	AttrResume:          true,
	AttrPausePageHidden: true,
	AttrDebug:           true,
}

// Triggers is the set of configured playback triggers.
type Triggers struct {
	OnLoad        bool
	OnVisible     bool
	OnHover       bool
	OnParentHover bool
}

// Any reports whether at least one trigger is configured.
func (t Triggers) Any() bool {
	return t.OnLoad || t.OnVisible || t.OnHover || t.OnParentHover
}

// Config is an element's resolved configuration. It is immutable: every
// refresh re-derives the whole record from the current attributes, never
// merging with a previous one.
type Config struct {
	Lazy              bool
	Margin            string
	Threshold         float64
	ParentSelector    string
	PauseOnHidden     bool
	ResumeOnReenter   bool
	PauseOnPageHidden bool
	Triggers          Triggers
	AutoMute          bool
	Preload           string
	Debug             bool
}

// Resolve derives a Config from the element's current attributes. Pure:
// no side effects, no state beyond the attribute reads.
func Resolve(el *dom.Element) Config {
	cfg := Config{
		Lazy:              el.GetAttribute(AttrMarker) != MarkerEager,
		Margin:            attrOr(el, AttrMargin, DefaultMargin),
		Threshold:         parseThreshold(el.GetAttribute(AttrThreshold)),
		ParentSelector:    strings.TrimSpace(el.GetAttribute(AttrHoverTarget)),
		PauseOnHidden:     boolAttr(el, AttrPauseHidden, true),
		ResumeOnReenter:   boolAttr(el, AttrResume, true),
		PauseOnPageHidden: boolAttr(el, AttrPausePageHidden, false),
		Triggers:          parseTriggers(el.GetAttribute(AttrTriggers)),
		Preload:           parsePreload(el.GetAttribute(AttrPreload)),
		Debug:             boolAttr(el, AttrDebug, false),
	}

	// Any autoplay-capable trigger implies muting, unless overridden.
	if el.HasAttribute(AttrMuted) {
		cfg.AutoMute = boolAttr(el, AttrMuted, true)
	} else {
		cfg.AutoMute = cfg.Triggers.Any()
	}
	return cfg
}

// parseTriggers parses a whitespace/comma-separated token set. Unknown
// tokens are ignored.
func parseTriggers(s string) Triggers {
	var t Triggers
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for _, tok := range tokens {
		switch strings.ToLower(tok) {
		case "load":
			t.OnLoad = true
		case "visible":
			t.OnVisible = true
		case "hover":
			t.OnHover = true
		case "parent-hover":
			t.OnParentHover = true
		}
	}
	return t
}

func parsePreload(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metadata":
		return "metadata"
	case "auto":
		return "auto"
	default:
		return "none"
	}
}

func parseThreshold(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1 {
		return 0
	}
	return v
}

func attrOr(el *dom.Element, name, fallback string) string {
	if v := strings.TrimSpace(el.GetAttribute(name)); v != "" {
		return v
	}
	return fallback
}

// boolAttr reads a boolean attribute. Presence with an empty value means
// true; "false", "0", "no", and "off" mean false.
func boolAttr(el *dom.Element, name string, fallback bool) bool {
	if !el.HasAttribute(name) {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(el.GetAttribute(name))) {
	case "false", "0", "no", "off":
		return false
	default:
		return true
	}
}
