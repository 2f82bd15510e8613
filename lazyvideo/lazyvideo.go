package lazyvideo

import (
	"log/slog"

	"github.com/spurwing-main/lazyloadvideo/dom"
)

// LazyVideo coordinates lazy loading and trigger-driven playback for the
// video elements of one document. Create one per document with New,
// discover existing elements with AttachAll, and Close when done; tree
// mutations are tracked automatically in between.
type LazyVideo struct {
	doc      *dom.Document
	diag     *diagnostics
	registry *registry
	sync     *treeSynchronizer
	closed   bool
}

// Option configures a LazyVideo at construction time.
type Option func(*LazyVideo)

// WithLogger routes diagnostics through logger instead of slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(lv *LazyVideo) {
		lv.diag.logger = logger
	}
}

// WithDebug enables debug tracing for every managed element, regardless
// of per-element debug attributes.
func WithDebug(debug bool) Option {
	return func(lv *LazyVideo) {
		lv.diag.debug = debug
	}
}

// New creates a LazyVideo bound to doc and starts observing tree
// mutations. No elements are managed until AttachAll or Attach runs, or
// a qualifying element is inserted into the tree.
func New(doc *dom.Document, opts ...Option) *LazyVideo {
	lv := &LazyVideo{
		doc:      doc,
		diag:     newDiagnostics(nil, false),
		registry: newRegistry(),
	}
	for _, opt := range opts {
		opt(lv)
	}
	lv.sync = &treeSynchronizer{lv: lv}
	doc.RegisterMutationCallback(lv.sync)
	return lv
}

// Handle refers to one managed element.
type Handle struct {
	lv *LazyVideo
	el *dom.Element
}

// Element returns the managed element.
func (h *Handle) Element() *dom.Element {
	return h.el
}

// Detach tears the element's controller down.
func (h *Handle) Detach() {
	h.lv.Detach(h.el)
}

// Refresh rebuilds the element's bindings from its current attributes.
func (h *Handle) Refresh() {
	h.lv.Refresh(h.el)
}

// Loaded reports whether sources have been applied in the current attach
// cycle.
func (h *Handle) Loaded() bool {
	if c, ok := h.lv.registry.get(h.el); ok {
		return c.loaded
	}
	return false
}

// Attach puts el under management and returns its handle. A non-video
// target is rejected with (nil, false), never a panic. Attaching an
// already managed element destroys the previous controller first.
func (lv *LazyVideo) Attach(el *dom.Element) (*Handle, bool) {
	if lv.closed || el == nil || el.AsVideo() == nil {
		return nil, false
	}
	c := newController(lv, el, false)
	lv.registry.put(el, c)
	c.bind()
	lv.diag.trace(el, "attached")
	return &Handle{lv: lv, el: el}, true
}

// Detach removes el from management and destroys its controller.
// Detaching an unmanaged element is a no-op.
func (lv *LazyVideo) Detach(el *dom.Element) {
	if el == nil {
		return
	}
	if _, ok := lv.registry.get(el); ok {
		lv.registry.remove(el)
		lv.diag.trace(el, "detached")
	}
}

// Refresh destroys and recreates el's controller from its current
// attributes. loaded is preserved when it was already true, or when the
// element already exposes a resolved source.
func (lv *LazyVideo) Refresh(el *dom.Element) {
	c, ok := lv.registry.get(el)
	if !ok {
		return
	}
	wasLoaded := c.loaded
	next := newController(lv, el, wasLoaded)
	lv.registry.put(el, next)
	next.bind()
	lv.diag.trace(el, "refreshed", "loaded", next.loaded)
}

// ReloadSources force-reapplies el's pending sources without rebinding.
func (lv *LazyVideo) ReloadSources(el *dom.Element) {
	if c, ok := lv.registry.get(el); ok {
		c.reloadSources()
	}
}

// AttachAll scans root (the whole document when root is nil) for video
// elements carrying the marker attribute and attaches each. Returns the
// handles in document order.
func (lv *LazyVideo) AttachAll(root *dom.Element) []*Handle {
	var start *dom.Node
	if root != nil {
		start = root.AsNode()
	} else {
		start = lv.doc.AsNode()
	}

	var handles []*Handle
	start.WalkElements(func(el *dom.Element) bool {
		if qualifies(el) {
			if h, ok := lv.Attach(el); ok {
				handles = append(handles, h)
			}
		}
		return true
	})
	return handles
}

// Play ensures el is loaded and issues a play request through its
// controller's primitives. No-op for unmanaged elements.
func (lv *LazyVideo) Play(el *dom.Element) {
	if c, ok := lv.registry.get(el); ok {
		c.ensureLoaded()
		c.autoplay()
	}
}

// Pause issues a pause request. No-op for unmanaged elements.
func (lv *LazyVideo) Pause(el *dom.Element) {
	if c, ok := lv.registry.get(el); ok {
		c.pause()
	}
}

// Managed reports whether el currently has a live controller.
func (lv *LazyVideo) Managed(el *dom.Element) bool {
	_, ok := lv.registry.get(el)
	return ok
}

// ManagedCount returns the number of live controllers.
func (lv *LazyVideo) ManagedCount() int {
	return lv.registry.len()
}

// Close stops mutation tracking and destroys every controller.
func (lv *LazyVideo) Close() {
	if lv.closed {
		return
	}
	lv.closed = true
	lv.doc.UnregisterMutationCallback(lv.sync)
	lv.registry.drain()
}

// qualifies reports whether el is a video element carrying the marker.
func qualifies(el *dom.Element) bool {
	return el.AsVideo() != nil && el.HasAttribute(AttrMarker)
}
