package dom

import "strings"

// VisibilityState is the page-visibility state of a document.
type VisibilityState string

const (
	VisibilityVisible VisibilityState = "visible"
	VisibilityHidden  VisibilityState = "hidden"
)

// AutoplayPolicy decides whether a play request on a media element is
// honored. Returning an error rejects the request asynchronously.
type AutoplayPolicy func(*VideoElement) error

// documentData holds data specific to Document nodes.
type documentData struct {
	viewport   Rect
	visibility VisibilityState
	events     *EventTarget

	tasks     []func()
	flushing  bool
	callbacks []MutationCallback
	observers []*IntersectionObserver

	autoplayPolicy AutoplayPolicy
}

// Document is the document view of a Node. It owns the task queue through
// which all asynchronous deliveries run, the mutation-callback registry,
// and the set of active intersection observers.
type Document Node

// NewDocument creates an empty document with a visible 0-sized viewport.
func NewDocument() *Document {
	n := newNode(DocumentNode, "#document", nil)
	n.documentData = &documentData{
		visibility: VisibilityVisible,
		events:     NewEventTarget(),
	}
	return (*Document)(n)
}

// AsNode returns the node view of the document.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// CreateElement creates a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	local := strings.ToLower(tag)
	n := newNode(ElementNode, strings.ToUpper(tag), d)
	n.elementData = &elementData{
		localName: local,
		tagName:   strings.ToUpper(tag),
	}
	return (*Element)(n)
}

// CreateTextNode creates a detached text node owned by d.
func (d *Document) CreateTextNode(text string) *Node {
	n := newNode(TextNode, "#text", d)
	n.textData = &text
	return n
}

// DocumentElement returns the root element, or nil.
func (d *Document) DocumentElement() *Element {
	for c := d.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// QuerySelector returns the first element in the document matching the
// selector, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	var found *Element
	d.AsNode().WalkElements(func(el *Element) bool {
		if el.Matches(selector) {
			found = el
			return false
		}
		return true
	})
	return found
}

// Viewport returns the document's viewport rect.
func (d *Document) Viewport() Rect {
	return d.data().viewport
}

// SetViewport assigns the viewport rect. Callers follow up with
// UpdateIntersections to deliver resulting enter/exit transitions.
func (d *Document) SetViewport(r Rect) {
	d.data().viewport = r
}

// ScrollTo moves the viewport origin, keeping its size.
func (d *Document) ScrollTo(x, y float64) {
	v := d.data().viewport
	v.X, v.Y = x, y
	d.data().viewport = v
}

// VisibilityState returns the page-visibility state.
func (d *Document) VisibilityState() VisibilityState {
	return d.data().visibility
}

// SetHidden sets the page-visibility state and dispatches a
// "visibilitychange" event on the document when it changed.
func (d *Document) SetHidden(hidden bool) {
	next := VisibilityVisible
	if hidden {
		next = VisibilityHidden
	}
	if d.data().visibility == next {
		return
	}
	d.data().visibility = next
	d.Events().Dispatch(&Event{Type: EventVisibilityChange, Target: d.AsNode()})
}

// Events returns the document-level event target.
func (d *Document) Events() *EventTarget {
	return d.data().events
}

// SetAutoplayPolicy installs the policy consulted by VideoElement.Play.
// A nil policy allows every request.
func (d *Document) SetAutoplayPolicy(p AutoplayPolicy) {
	d.data().autoplayPolicy = p
}

// QueueTask enqueues fn on the document's task queue.
func (d *Document) QueueTask(fn func()) {
	d.data().tasks = append(d.data().tasks, fn)
}

// Flush runs queued tasks until the queue is empty. Tasks may enqueue
// further tasks; those run within the same flush. Re-entrant calls from
// within a task are no-ops.
func (d *Document) Flush() {
	data := d.data()
	if data.flushing {
		return
	}
	data.flushing = true
	defer func() { data.flushing = false }()

	for len(data.tasks) > 0 {
		t := data.tasks[0]
		data.tasks = data.tasks[1:]
		t()
	}
}

// PendingTasks returns the number of queued tasks.
func (d *Document) PendingTasks() int {
	return len(d.data().tasks)
}

func (d *Document) data() *documentData {
	return d.AsNode().documentData
}
