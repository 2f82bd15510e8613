package lazyvideo

import "github.com/spurwing-main/lazyloadvideo/dom"

// treeSynchronizer keeps the registry consistent with the document tree.
// It is the single mutation subscription for the whole managed subtree:
// child-list changes drive attach/detach, and tracked-attribute changes
// dispatch to reloadSources or refresh per the reconfigure protocol.
// Deliveries arrive synchronously in document order, so a batch of
// mutations is processed as one ordered sequence; detach is idempotent,
// which makes a remove-then-reinsert of the same element within one
// batch safe.
type treeSynchronizer struct {
	lv *LazyVideo
}

func (s *treeSynchronizer) OnChildListMutation(
	target *dom.Node,
	addedNodes []*dom.Node,
	removedNodes []*dom.Node,
	previousSibling *dom.Node,
	nextSibling *dom.Node,
) {
	for _, n := range removedNodes {
		// Detach every video in the removed subtree, managed or not;
		// detach of an unmanaged element is a no-op.
		n.WalkElements(func(el *dom.Element) bool {
			if el.AsVideo() != nil {
				s.lv.Detach(el)
			}
			return true
		})
	}
	for _, n := range addedNodes {
		if !n.IsConnected() {
			continue
		}
		n.WalkElements(func(el *dom.Element) bool {
			if qualifies(el) {
				s.lv.Attach(el)
			}
			return true
		})
	}
}

func (s *treeSynchronizer) OnAttributeMutation(target *dom.Node, attributeName, oldValue string) {
	el := target.AsElement()
	if el == nil || !trackedAttributes[attributeName] {
		return
	}

	// A descriptor-level source change reloads its owning video.
	if attributeName == AttrSrc && el.LocalName() == "source" {
		if parent := el.AsNode().ParentElement(); parent != nil && s.lv.Managed(parent) {
			s.lv.ReloadSources(parent)
		}
		return
	}

	if !s.lv.Managed(el) {
		// The marker being newly added opts the element in.
		if attributeName == AttrMarker && qualifies(el) && el.AsNode().IsConnected() {
			s.lv.Attach(el)
		}
		return
	}

	switch attributeName {
	case AttrMarker:
		if !el.HasAttribute(AttrMarker) {
			// Marker removed from an element still in the tree: treat
			// as an explicit opt-out.
			s.lv.Detach(el)
			return
		}
		s.lv.Refresh(el)
	case AttrSrc:
		s.lv.ReloadSources(el)
	default:
		s.lv.Refresh(el)
	}
}
