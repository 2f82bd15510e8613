package dom

import "strings"

// Attr is a single attribute on an element.
type Attr struct {
	Name  string
	Value string
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName string
	tagName   string
	attrs     []Attr
	events    *EventTarget

	// Layout geometry, set by the embedder. Zero until assigned.
	rect Rect

	// Media state, allocated on first use for media elements.
	media *mediaState
}

// Element is the element view of a Node.
type Element Node

// AsNode returns the node view of the element.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the uppercase tag name.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the lowercase tag name.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// Id returns the value of the id attribute.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	name = strings.ToLower(name)
	for _, a := range e.elementData.attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttribute reports whether the attribute is present, even with an
// empty value.
func (e *Element) HasAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, a := range e.elementData.attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttribute sets the attribute and notifies attribute mutation
// callbacks with the old value.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.elementData.attrs {
		if a.Name == name {
			if a.Value == value {
				return
			}
			e.elementData.attrs[i].Value = value
			e.notifyAttr(name, a.Value)
			return
		}
	}
	e.elementData.attrs = append(e.elementData.attrs, Attr{Name: name, Value: value})
	e.notifyAttr(name, "")
}

// RemoveAttribute removes the attribute if present and notifies attribute
// mutation callbacks.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range e.elementData.attrs {
		if a.Name == name {
			e.elementData.attrs = append(e.elementData.attrs[:i], e.elementData.attrs[i+1:]...)
			e.notifyAttr(name, a.Value)
			return
		}
	}
}

// Attributes returns a copy of the attribute list in set order.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, len(e.elementData.attrs))
	copy(out, e.elementData.attrs)
	return out
}

func (e *Element) notifyAttr(name, oldValue string) {
	if d := e.AsNode().doc(); d != nil {
		d.notifyAttributeMutation(e.AsNode(), name, oldValue)
	}
}

// Children returns the element children in tree order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
	}
	return out
}

// ClassList returns the class attribute split into tokens.
func (e *Element) ClassList() []string {
	return strings.Fields(e.GetAttribute("class"))
}

func (e *Element) hasClass(name string) bool {
	for _, c := range e.ClassList() {
		if c == name {
			return true
		}
	}
	return false
}

// QuerySelector returns the first descendant matching the selector, or nil.
func (e *Element) QuerySelector(selector string) *Element {
	var found *Element
	for c := e.AsNode().firstChild; c != nil; c = c.nextSibling {
		c.WalkElements(func(el *Element) bool {
			if el.Matches(selector) {
				found = el
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// Matches reports whether the element matches the selector. The supported
// grammar is a compound-selector subset: tag, #id, .class, [attr],
// [attr=value] (plus ~= |= ^= $= *= operators), compounds thereof, and
// comma-separated alternatives. Combinators are not supported.
func (e *Element) Matches(selector string) bool {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return false
	}
	if strings.Contains(selector, ",") {
		for _, part := range strings.Split(selector, ",") {
			if part = strings.TrimSpace(part); part != "" && e.matchesCompound(part) {
				return true
			}
		}
		return false
	}
	return e.matchesCompound(selector)
}

func (e *Element) matchesCompound(selector string) bool {
	if selector == "*" {
		return true
	}

	current := selector
	if idx := strings.IndexAny(current, ".#["); idx != 0 {
		var tag string
		if idx > 0 {
			tag = current[:idx]
			current = current[idx:]
		} else {
			tag = current
			current = ""
		}
		if !strings.EqualFold(e.TagName(), tag) {
			return false
		}
	}

	for len(current) > 0 {
		switch current[0] {
		case '.':
			name, rest := simpleSelectorToken(current[1:])
			if !e.hasClass(name) {
				return false
			}
			current = rest
		case '#':
			name, rest := simpleSelectorToken(current[1:])
			if e.Id() != name {
				return false
			}
			current = rest
		case '[':
			end := strings.Index(current, "]")
			if end == -1 {
				return false
			}
			if !e.matchesAttributeSelector(current[1:end]) {
				return false
			}
			current = current[end+1:]
		default:
			return false
		}
	}
	return true
}

// simpleSelectorToken splits off a class/id token at the next selector
// delimiter.
func simpleSelectorToken(s string) (token, rest string) {
	if end := strings.IndexAny(s, ".#["); end != -1 {
		return s[:end], s[end:]
	}
	return s, ""
}

func (e *Element) matchesAttributeSelector(selector string) bool {
	if !strings.Contains(selector, "=") {
		return e.HasAttribute(strings.TrimSpace(selector))
	}

	var name, op, value string
	for i, r := range selector {
		if r == '=' {
			name, op, value = selector[:i], "=", selector[i+1:]
			break
		}
		if strings.ContainsRune("~|^$*", r) && i+1 < len(selector) && selector[i+1] == '=' {
			name, op, value = selector[:i], string(r)+"=", selector[i+2:]
			break
		}
	}
	if name == "" {
		return false
	}
	if !e.HasAttribute(name) {
		return false
	}
	got := e.GetAttribute(name)
	value = strings.Trim(value, "\"'")

	switch op {
	case "=":
		return got == value
	case "~=":
		for _, word := range strings.Fields(got) {
			if word == value {
				return true
			}
		}
		return false
	case "|=":
		return got == value || strings.HasPrefix(got, value+"-")
	case "^=":
		return strings.HasPrefix(got, value)
	case "$=":
		return strings.HasSuffix(got, value)
	case "*=":
		return strings.Contains(got, value)
	}
	return false
}

// Closest returns the closest ancestor element (or the element itself)
// matching the selector, or nil.
func (e *Element) Closest(selector string) *Element {
	for current := e; current != nil; current = current.AsNode().ParentElement() {
		if current.Matches(selector) {
			return current
		}
	}
	return nil
}

// Rect returns the element's layout rect as assigned by the embedder.
func (e *Element) Rect() Rect {
	return e.elementData.rect
}

// SetRect assigns the element's layout rect. Rects are in the same
// coordinate space as the document viewport.
func (e *Element) SetRect(r Rect) {
	e.elementData.rect = r
}

// Events returns the element's event target, allocating it on first use.
func (e *Element) Events() *EventTarget {
	if e.elementData.events == nil {
		e.elementData.events = NewEventTarget()
	}
	return e.elementData.events
}
