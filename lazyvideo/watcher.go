package lazyvideo

import "github.com/spurwing-main/lazyloadvideo/dom"

// viewportWatcher wraps one intersection observer for one element,
// delivering enter/exit booleans to its owner. It can be torn down
// independently of the controller's other bindings, which is how the
// controller releases observation early once no configured behavior
// needs geometric events anymore.
type viewportWatcher struct {
	observer *dom.IntersectionObserver
	el       *dom.Element
}

func newViewportWatcher(doc *dom.Document, el *dom.Element, margin string, threshold float64, onChange func(entering bool)) *viewportWatcher {
	observer := doc.NewIntersectionObserver(func(_ *dom.Element, entering bool) {
		onChange(entering)
	}, dom.ParseMargin(margin), threshold)
	observer.Observe(el)
	return &viewportWatcher{observer: observer, el: el}
}

// stop disconnects the underlying observer. Idempotent.
func (w *viewportWatcher) stop() {
	w.observer.Disconnect()
}
