package dom

// MutationCallback receives notifications about document mutations.
type MutationCallback interface {
	// OnChildListMutation is called when children are added to or removed
	// from target.
	OnChildListMutation(
		target *Node,
		addedNodes []*Node,
		removedNodes []*Node,
		previousSibling *Node,
		nextSibling *Node,
	)

	// OnAttributeMutation is called when an attribute on target changes,
	// including additions and removals.
	OnAttributeMutation(
		target *Node,
		attributeName string,
		oldValue string,
	)
}

// RegisterMutationCallback registers a callback to receive mutation
// notifications for this document.
func (d *Document) RegisterMutationCallback(callback MutationCallback) {
	if callback == nil {
		return
	}
	d.data().callbacks = append(d.data().callbacks, callback)
}

// UnregisterMutationCallback removes a previously registered callback.
func (d *Document) UnregisterMutationCallback(callback MutationCallback) {
	callbacks := d.data().callbacks
	for i, cb := range callbacks {
		if cb == callback {
			d.data().callbacks = append(callbacks[:i], callbacks[i+1:]...)
			return
		}
	}
}

func (d *Document) notifyChildListMutation(
	target *Node,
	addedNodes []*Node,
	removedNodes []*Node,
	previousSibling *Node,
	nextSibling *Node,
) {
	for _, cb := range d.data().callbacks {
		cb.OnChildListMutation(target, addedNodes, removedNodes, previousSibling, nextSibling)
	}
}

func (d *Document) notifyAttributeMutation(target *Node, attributeName, oldValue string) {
	for _, cb := range d.data().callbacks {
		cb.OnAttributeMutation(target, attributeName, oldValue)
	}
}
