package lazyvideo

import "github.com/spurwing-main/lazyloadvideo/dom"

// registry is the identity-keyed element-to-controller map. Removal is
// driven solely by detach events from the tree-mutation path or explicit
// calls; nothing relies on automatic reclamation. Invariant: at most one
// live controller per element.
type registry struct {
	controllers map[*dom.Element]*controller
}

func newRegistry() *registry {
	return &registry{controllers: make(map[*dom.Element]*controller)}
}

func (r *registry) get(el *dom.Element) (*controller, bool) {
	c, ok := r.controllers[el]
	return c, ok
}

// put installs a controller for el, fully destroying any existing one
// first. Safe to call re-entrantly from within a callback: the old
// controller is destroyed and removed before the new one is visible.
func (r *registry) put(el *dom.Element, c *controller) {
	if old, ok := r.controllers[el]; ok {
		delete(r.controllers, el)
		old.destroy()
	}
	r.controllers[el] = c
}

// remove destroys and forgets the controller for el. Idempotent.
func (r *registry) remove(el *dom.Element) {
	if c, ok := r.controllers[el]; ok {
		delete(r.controllers, el)
		c.destroy()
	}
}

func (r *registry) len() int {
	return len(r.controllers)
}

// drain destroys every controller and empties the map.
func (r *registry) drain() {
	for el, c := range r.controllers {
		delete(r.controllers, el)
		c.destroy()
	}
}
