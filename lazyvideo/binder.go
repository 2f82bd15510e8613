package lazyvideo

import "github.com/spurwing-main/lazyloadvideo/dom"

// hoverBinding holds the reversible handles of one hover-target binding.
// Handle identity is stable across source reloads; only a full refresh
// re-registers listeners.
type hoverBinding struct {
	target *dom.Element
	enter  dom.ListenerHandle
	leave  dom.ListenerHandle
}

// bindHover installs mouseenter/mouseleave listeners on target and
// returns the binding plus its teardown.
func bindHover(target *dom.Element, onEnter, onLeave func()) (*hoverBinding, func()) {
	b := &hoverBinding{
		target: target,
		enter: target.Events().AddEventListener(dom.EventMouseEnter, func(*dom.Event) {
			onEnter()
		}),
		leave: target.Events().AddEventListener(dom.EventMouseLeave, func(*dom.Event) {
			onLeave()
		}),
	}
	teardown := func() {
		target.Events().RemoveEventListener(b.enter)
		target.Events().RemoveEventListener(b.leave)
	}
	return b, teardown
}

// resolveHoverTarget resolves the parent-hover target: the nearest
// ancestor matching selector, or the immediate parent when no selector
// is configured. Returns nil when resolution fails.
func resolveHoverTarget(el *dom.Element, selector string) *dom.Element {
	parent := el.AsNode().ParentElement()
	if selector == "" {
		return parent
	}
	if parent == nil {
		return nil
	}
	return parent.Closest(selector)
}

// bindPageVisibility installs a visibilitychange listener on the
// document and returns its teardown.
func bindPageVisibility(doc *dom.Document, onChange func(hidden bool)) func() {
	handle := doc.Events().AddEventListener(dom.EventVisibilityChange, func(*dom.Event) {
		onChange(doc.VisibilityState() == dom.VisibilityHidden)
	})
	return func() {
		doc.Events().RemoveEventListener(handle)
	}
}
