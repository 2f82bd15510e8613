package dom

// IntersectionCallback receives enter/exit transitions for an observed
// element. entering is true when the element began intersecting the
// (margin-expanded) viewport and false when it stopped.
type IntersectionCallback func(target *Element, entering bool)

type observation struct {
	target    *Element
	delivered bool
	lastState bool
}

// IntersectionObserver watches elements for transitions of their
// intersection with the document viewport, expanded by Margin and gated
// by Threshold. Transitions are computed by Document.UpdateIntersections
// and delivered asynchronously through the document task queue.
type IntersectionObserver struct {
	doc          *Document
	callback     IntersectionCallback
	margin       Margin
	threshold    float64
	observed     []*observation
	disconnected bool
}

// NewIntersectionObserver creates an observer registered with doc.
func (d *Document) NewIntersectionObserver(callback IntersectionCallback, margin Margin, threshold float64) *IntersectionObserver {
	o := &IntersectionObserver{
		doc:       d,
		callback:  callback,
		margin:    margin,
		threshold: threshold,
	}
	d.data().observers = append(d.data().observers, o)
	return o
}

// Observe starts watching target. The first UpdateIntersections after
// Observe always delivers the current state.
func (o *IntersectionObserver) Observe(target *Element) {
	if o.disconnected || target == nil {
		return
	}
	for _, obs := range o.observed {
		if obs.target == target {
			return
		}
	}
	o.observed = append(o.observed, &observation{target: target})
}

// Unobserve stops watching target.
func (o *IntersectionObserver) Unobserve(target *Element) {
	for i, obs := range o.observed {
		if obs.target == target {
			o.observed = append(o.observed[:i], o.observed[i+1:]...)
			return
		}
	}
}

// Disconnect stops watching all targets and detaches the observer from
// its document. Pending queued deliveries become no-ops.
func (o *IntersectionObserver) Disconnect() {
	if o.disconnected {
		return
	}
	o.disconnected = true
	o.observed = nil

	observers := o.doc.data().observers
	for i, reg := range observers {
		if reg == o {
			o.doc.data().observers = append(observers[:i], observers[i+1:]...)
			return
		}
	}
}

// Connected reports whether the observer is still registered with its
// document.
func (o *IntersectionObserver) Connected() bool {
	return !o.disconnected
}

// ObservedCount returns the number of currently observed targets.
func (o *IntersectionObserver) ObservedCount() int {
	return len(o.observed)
}

func (o *IntersectionObserver) observes(target *Element) bool {
	for _, obs := range o.observed {
		if obs.target == target {
			return true
		}
	}
	return false
}

// RegisteredObservers returns the number of observers currently
// registered with the document.
func (d *Document) RegisteredObservers() int {
	return len(d.data().observers)
}

// UpdateIntersections recomputes the intersection state of every observed
// element of every registered observer and queues callback deliveries for
// observations whose state changed since the last delivery. The initial
// observation always delivers. Callers run Document.Flush to deliver.
func (d *Document) UpdateIntersections() {
	for _, o := range d.data().observers {
		root := d.Viewport().Expand(o.margin)
		for _, obs := range o.observed {
			state := intersects(obs.target.Rect(), root, o.threshold)
			if obs.delivered && state == obs.lastState {
				continue
			}
			obs.delivered = true
			obs.lastState = state

			observer, target := o, obs.target
			d.QueueTask(func() {
				if observer.disconnected || !observer.observes(target) {
					return
				}
				observer.callback(target, state)
			})
		}
	}
}
