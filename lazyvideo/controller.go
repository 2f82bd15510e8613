package lazyvideo

import "github.com/spurwing-main/lazyloadvideo/dom"

// controller owns one managed element's lifecycle state. Every trigger
// source funnels into the three shared primitives ensureLoaded, autoplay,
// and pause; triggers never duplicate their logic, so they are free to
// race and the most recent one wins.
type controller struct {
	lv    *LazyVideo
	el    *dom.Element
	video *dom.VideoElement
	cfg   Config

	// loaded is monotone within an attach cycle: once true it stays
	// true. reloadSources re-fetches bytes without resetting it.
	loaded    bool
	destroyed bool

	// loadArmed gates the load trigger to a single shot per attach
	// cycle.
	loadArmed bool

	watcher   *viewportWatcher
	hover     *hoverBinding
	teardowns []func()
}

func newController(lv *LazyVideo, el *dom.Element, preserveLoaded bool) *controller {
	video := el.AsVideo()
	c := &controller{
		lv:    lv,
		el:    el,
		video: video,
		cfg:   Resolve(el),
	}
	if preserveLoaded || video.CurrentSrc() != "" {
		c.loaded = true
	}
	return c
}

// bind installs every binding the configuration calls for. On the eager
// path (lazy mode disabled) sources are applied immediately and the
// visible trigger is treated as permanently satisfied.
func (c *controller) bind() {
	doc := c.lv.doc
	c.loadArmed = c.cfg.Triggers.OnLoad

	if c.cfg.Triggers.OnLoad {
		ready := c.el.Events().AddEventListener(dom.EventCanPlay, func(*dom.Event) {
			c.onReady()
		})
		events := c.el.Events()
		c.teardowns = append(c.teardowns, func() {
			events.RemoveEventListener(ready)
		})
	}

	if c.cfg.Triggers.OnHover {
		binding, teardown := bindHover(c.el, c.onHoverEnter, c.onHoverLeave)
		c.hover = binding
		c.teardowns = append(c.teardowns, teardown)
	}

	if c.cfg.Triggers.OnParentHover {
		target := resolveHoverTarget(c.el, c.cfg.ParentSelector)
		if target == nil {
			c.lv.diag.warn(c.el, "hover target did not resolve, skipping parent-hover binding",
				"selector", c.cfg.ParentSelector)
		} else {
			binding, teardown := bindHover(target, c.onHoverEnter, c.onHoverLeave)
			if c.hover == nil {
				c.hover = binding
			}
			c.teardowns = append(c.teardowns, teardown)
		}
	}

	if c.cfg.PauseOnPageHidden || (c.cfg.Triggers.OnVisible && c.cfg.ResumeOnReenter) {
		c.teardowns = append(c.teardowns, bindPageVisibility(doc, c.onPageVisibility))
	}

	if !c.cfg.Lazy {
		c.ensureLoaded()
		if c.cfg.Triggers.OnVisible {
			c.autoplay()
		}
		return
	}

	if c.needsViewport() {
		c.watcher = newViewportWatcher(doc, c.el, c.cfg.Margin, c.cfg.Threshold, c.onViewportChange)
		c.teardowns = append(c.teardowns, c.watcher.stop)
	}
}

// needsViewport reports whether any configured behavior still requires
// geometric events.
func (c *controller) needsViewport() bool {
	if !c.loaded {
		return true
	}
	return c.cfg.Triggers.OnVisible || c.cfg.PauseOnHidden || c.cfg.ResumeOnReenter
}

// ensureLoaded applies pending sources exactly once. The preload hint is
// written at this moment and not before, so no network activity happens
// ahead of a load decision.
func (c *controller) ensureLoaded() {
	if c.destroyed || c.loaded {
		return
	}
	if !c.hasPendingSources() {
		c.lv.diag.warn(c.el, "no pending source reference on element or its descriptors")
		return
	}
	c.applySources()
	c.loaded = true
	c.lv.diag.trace(c.el, "sources applied", "src", c.video.CurrentSrc())
}

// applySources rewrites pending data-src references into real src
// references and issues a reload so they take effect. Descriptor-level
// references take precedence over the element-level fallback.
func (c *controller) applySources() {
	applied := false
	for _, s := range c.video.Sources() {
		if src := s.GetAttribute(AttrSrc); src != "" {
			s.SetAttribute("src", src)
			applied = true
		}
	}
	if !applied {
		if src := c.el.GetAttribute(AttrSrc); src != "" {
			c.el.SetAttribute("src", src)
		}
	}
	c.video.SetPreload(c.cfg.Preload)
	c.video.Load()
}

func (c *controller) hasPendingSources() bool {
	if c.el.GetAttribute(AttrSrc) != "" {
		return true
	}
	for _, s := range c.video.Sources() {
		if s.GetAttribute(AttrSrc) != "" {
			return true
		}
	}
	return false
}

// autoplay issues a play request with the mute and inline hints the
// platform expects for unattended playback. Rejection is expected and
// silent.
func (c *controller) autoplay() {
	if c.destroyed {
		return
	}
	if c.cfg.AutoMute {
		c.video.SetMuted(true)
	}
	c.video.SetPlaysInline(true)
	c.video.Play().Then(nil, func(err error) {
		c.lv.diag.trace(c.el, "play request rejected", "reason", err)
	})
}

// pause issues a pause request. Never raises.
func (c *controller) pause() {
	if c.destroyed {
		return
	}
	c.video.Pause()
}

// onReady handles the first resource-ready signal after sources were
// applied. Single-shot: not re-armed until the next attach or refresh.
func (c *controller) onReady() {
	if c.destroyed || !c.loadArmed || !c.loaded {
		return
	}
	c.loadArmed = false
	c.autoplay()
}

func (c *controller) onViewportChange(entering bool) {
	if c.destroyed {
		return
	}
	if entering {
		c.onViewportEnter()
	} else if c.cfg.PauseOnHidden {
		c.pause()
	}
}

func (c *controller) onViewportEnter() {
	if !c.loaded {
		c.ensureLoaded()
		if c.cfg.Triggers.OnVisible {
			c.autoplay()
		}
	} else if c.cfg.Triggers.OnVisible && c.cfg.ResumeOnReenter {
		c.autoplay()
	}

	// Release observation once nothing configured needs geometric
	// events anymore.
	if !c.cfg.Triggers.OnVisible && !c.cfg.PauseOnHidden && !c.cfg.ResumeOnReenter {
		if c.watcher != nil {
			c.watcher.stop()
		}
	}
}

func (c *controller) onHoverEnter() {
	if c.destroyed {
		return
	}
	c.ensureLoaded()
	c.autoplay()
}

func (c *controller) onHoverLeave() {
	if c.destroyed {
		return
	}
	c.pause()
}

func (c *controller) onPageVisibility(hidden bool) {
	if c.destroyed {
		return
	}
	if hidden {
		if c.cfg.PauseOnPageHidden {
			c.pause()
		}
		return
	}
	// Returning to a visible page replays only when the element itself
	// sits in the viewport right now. This is a direct containment
	// test, independent of the observer's delivery state.
	if c.cfg.Triggers.OnVisible && c.cfg.ResumeOnReenter &&
		c.el.IntersectsViewport(dom.ParseMargin(c.cfg.Margin), c.cfg.Threshold) {
		c.autoplay()
	}
}

// reloadSources force-reapplies sources without touching bindings.
// loaded is set unconditionally true.
func (c *controller) reloadSources() {
	if c.destroyed {
		return
	}
	if !c.hasPendingSources() {
		c.lv.diag.warn(c.el, "reload requested but no pending source reference present")
	}
	c.applySources()
	c.loaded = true
	c.lv.diag.trace(c.el, "sources reloaded", "src", c.video.CurrentSrc())
}

// destroy synchronously removes every binding so no further callback can
// act on this controller. Each teardown step is fault-isolated.
func (c *controller) destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for _, teardown := range c.teardowns {
		runTeardown(teardown)
	}
	c.teardowns = nil
	c.watcher = nil
	c.hover = nil
}

func runTeardown(teardown func()) {
	defer func() {
		_ = recover()
	}()
	teardown()
}
