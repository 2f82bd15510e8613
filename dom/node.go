// Package dom provides a headless document model: a mutable element tree
// with attribute and child-list mutation notification, synchronous event
// dispatch, viewport geometry with intersection observation, and enough
// media-element state (sources, preload, play/pause) for playback
// coordination to run against. All asynchronous deliveries go through the
// owning Document's task queue; nothing runs in parallel.
package dom

import "strings"

// Node is a node in the document tree. Document, Element, and Text are
// views over the same struct, distinguished by nodeType.
type Node struct {
	nodeType NodeType
	nodeName string
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data; only one is non-nil per nodeType.
	elementData  *elementData
	textData     *string
	documentData *documentData
}

func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the node name: the uppercase tag name for elements,
// "#text" for text nodes, "#document" for documents.
func (n *Node) NodeName() string {
	return n.nodeName
}

// OwnerDocument returns the document the node belongs to, or nil for a
// Document node itself.
func (n *Node) OwnerDocument() *Document {
	return n.ownerDoc
}

// ParentNode returns the parent, or nil.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent if it is an element, or nil.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling, or nil.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// ChildNodes returns the children as a slice, in tree order.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

// IsConnected reports whether the node is reachable from its document.
func (n *Node) IsConnected() bool {
	for cur := n; cur != nil; cur = cur.parentNode {
		if cur.nodeType == DocumentNode {
			return true
		}
	}
	return false
}

// AsElement returns the element view of the node, or nil when the node is
// not an element.
func (n *Node) AsElement() *Element {
	if n == nil || n.nodeType != ElementNode {
		return nil
	}
	return (*Element)(n)
}

// AppendChild adds child as the last child of n, detaching it from any
// previous parent first, and notifies child-list mutation callbacks.
func (n *Node) AppendChild(child *Node) *Node {
	if child == nil || child == n {
		return child
	}
	if child.parentNode != nil {
		child.parentNode.removeChild(child, false)
	}

	prev := n.lastChild
	child.parentNode = n
	child.prevSibling = prev
	child.nextSibling = nil
	if prev != nil {
		prev.nextSibling = child
	} else {
		n.firstChild = child
	}
	n.lastChild = child

	if d := n.doc(); d != nil {
		d.notifyChildListMutation(n, []*Node{child}, nil, prev, nil)
	}
	return child
}

// RemoveChild removes child from n and notifies child-list mutation
// callbacks. Removing a node that is not a child is a no-op.
func (n *Node) RemoveChild(child *Node) *Node {
	return n.removeChild(child, true)
}

func (n *Node) removeChild(child *Node, notify bool) *Node {
	if child == nil || child.parentNode != n {
		return child
	}

	prev := child.prevSibling
	next := child.nextSibling
	if prev != nil {
		prev.nextSibling = next
	} else {
		n.firstChild = next
	}
	if next != nil {
		next.prevSibling = prev
	} else {
		n.lastChild = prev
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil

	if notify {
		if d := n.doc(); d != nil {
			d.notifyChildListMutation(n, nil, []*Node{child}, prev, next)
		}
	}
	return child
}

// TextContent returns the concatenated text of the node's subtree.
func (n *Node) TextContent() string {
	if n.nodeType == TextNode {
		if n.textData != nil {
			return *n.textData
		}
		return ""
	}
	var b strings.Builder
	for c := n.firstChild; c != nil; c = c.nextSibling {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// WalkElements calls fn for every element in the subtree rooted at n,
// in document order, including n itself when it is an element. Returning
// false from fn stops the walk.
func (n *Node) WalkElements(fn func(*Element) bool) {
	n.walkElements(fn)
}

func (n *Node) walkElements(fn func(*Element) bool) bool {
	if n.nodeType == ElementNode {
		if !fn((*Element)(n)) {
			return false
		}
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if !c.walkElements(fn) {
			return false
		}
	}
	return true
}

// doc resolves the document for mutation notification. A Document node
// owns itself.
func (n *Node) doc() *Document {
	if n.nodeType == DocumentNode {
		return (*Document)(n)
	}
	return n.ownerDoc
}
