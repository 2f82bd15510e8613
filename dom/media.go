package dom

// mediaState holds playback state for a media element.
type mediaState struct {
	currentSrc   string
	preload      string
	muted        bool
	paused       bool
	loadCount    int
	playRequests int
}

// PlayPromise is the asynchronous result of a play request. Handlers are
// delivered through the document task queue.
type PlayPromise struct {
	doc     *Document
	settled bool
	err     error
}

// Then registers settlement handlers. Either may be nil. Delivery is
// queued, never synchronous.
func (p *PlayPromise) Then(onResolve func(), onReject func(error)) {
	p.doc.QueueTask(func() {
		if !p.settled {
			return
		}
		if p.err != nil {
			if onReject != nil {
				onReject(p.err)
			}
			return
		}
		if onResolve != nil {
			onResolve()
		}
	})
}

// VideoElement is the media view of a video element.
type VideoElement struct {
	el *Element
}

// AsVideo returns the media view of the element, or nil when the element
// is not a video.
func (e *Element) AsVideo() *VideoElement {
	if e == nil || e.LocalName() != "video" {
		return nil
	}
	return &VideoElement{el: e}
}

// Element returns the underlying element.
func (v *VideoElement) Element() *Element {
	return v.el
}

func (v *VideoElement) state() *mediaState {
	if v.el.elementData.media == nil {
		v.el.elementData.media = &mediaState{paused: true}
	}
	return v.el.elementData.media
}

// CurrentSrc returns the source applied by the last Load, or "".
func (v *VideoElement) CurrentSrc() string {
	return v.state().currentSrc
}

// Preload returns the preload hint applied via SetPreload.
func (v *VideoElement) Preload() string {
	return v.state().preload
}

// SetPreload assigns the preload hint. No fetching is modeled; the value
// is recorded as-is.
func (v *VideoElement) SetPreload(mode string) {
	v.state().preload = mode
}

// Muted reports the mute state.
func (v *VideoElement) Muted() bool {
	return v.state().muted
}

// SetMuted assigns the mute state.
func (v *VideoElement) SetMuted(muted bool) {
	v.state().muted = muted
}

// PlaysInline reports whether the inline-playback hint attribute is set.
func (v *VideoElement) PlaysInline() bool {
	return v.el.HasAttribute("playsinline")
}

// SetPlaysInline sets or removes the inline-playback hint attribute.
func (v *VideoElement) SetPlaysInline(inline bool) {
	if inline {
		v.el.SetAttribute("playsinline", "")
	} else {
		v.el.RemoveAttribute("playsinline")
	}
}

// Paused reports whether playback is paused. Elements start paused.
func (v *VideoElement) Paused() bool {
	return v.state().paused
}

// Sources returns the element's <source> descriptor children in tree
// order.
func (v *VideoElement) Sources() []*Element {
	var out []*Element
	for _, c := range v.el.Children() {
		if c.LocalName() == "source" {
			out = append(out, c)
		}
	}
	return out
}

// Load performs resource selection: the element's src attribute wins,
// otherwise the first source descriptor carrying src. A "canplay" ready
// signal is queued on the document task queue. Each call re-runs
// selection, modeling the media load algorithm restart.
func (v *VideoElement) Load() {
	st := v.state()
	st.loadCount++

	st.currentSrc = v.el.GetAttribute("src")
	if st.currentSrc == "" {
		for _, s := range v.Sources() {
			if src := s.GetAttribute("src"); src != "" {
				st.currentSrc = src
				break
			}
		}
	}

	if d := v.el.AsNode().ownerDoc; d != nil && st.currentSrc != "" {
		el := v.el
		d.QueueTask(func() {
			el.DispatchEvent(EventCanPlay)
		})
	}
}

// Play issues a play request. The document's autoplay policy decides the
// outcome; rejection is reported only through the returned promise. A
// granted request flips Paused synchronously, matching element playback
// semantics.
func (v *VideoElement) Play() *PlayPromise {
	st := v.state()
	st.playRequests++

	d := v.el.AsNode().ownerDoc
	if d == nil {
		return &PlayPromise{doc: NewDocument(), settled: true}
	}

	p := &PlayPromise{doc: d, settled: true}
	if policy := d.data().autoplayPolicy; policy != nil {
		p.err = policy(v)
	}
	if p.err == nil {
		st.paused = false
	}
	return p
}

// Pause stops playback immediately. Pausing a paused element is a no-op.
func (v *VideoElement) Pause() {
	v.state().paused = true
}

// LoadCount returns how many times Load ran. Embedder instrumentation.
func (v *VideoElement) LoadCount() int {
	return v.state().loadCount
}

// PlayRequests returns how many play requests were issued, granted or
// not. Embedder instrumentation.
func (v *VideoElement) PlayRequests() int {
	return v.state().playRequests
}
