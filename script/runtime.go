// Package script exposes the lazyvideo public operations to embedded
// page scripts through a goja runtime, so host applications can drive
// attach, playback, and refresh from JavaScript.
package script

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/spurwing-main/lazyloadvideo/dom"
	"github.com/spurwing-main/lazyloadvideo/lazyvideo"
)

// Runtime hosts a JavaScript VM bound to one document and its LazyVideo.
type Runtime struct {
	vm  *goja.Runtime
	doc *dom.Document
	lv  *lazyvideo.LazyVideo
}

// New creates a runtime with the lazyvideo and document globals
// installed.
func New(doc *dom.Document, lv *lazyvideo.LazyVideo) *Runtime {
	r := &Runtime{
		vm:  goja.New(),
		doc: doc,
		lv:  lv,
	}
	r.installLazyVideo()
	r.installDocument()
	return r
}

// Run executes src and returns its completion value. Script errors
// surface as Go errors.
func (r *Runtime) Run(src string) (goja.Value, error) {
	v, err := r.vm.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("running script: %w", err)
	}
	return v, nil
}

// installLazyVideo binds the public operations on a lazyvideo global.
// Selector-addressed variants resolve their target through
// document.querySelector semantics and return false when nothing
// matches.
func (r *Runtime) installLazyVideo() {
	obj := r.vm.NewObject()

	_ = obj.Set("attach", func(selector string) bool {
		el := r.doc.QuerySelector(selector)
		if el == nil {
			return false
		}
		_, ok := r.lv.Attach(el)
		return ok
	})
	_ = obj.Set("detach", func(selector string) {
		if el := r.doc.QuerySelector(selector); el != nil {
			r.lv.Detach(el)
		}
	})
	_ = obj.Set("refresh", func(selector string) {
		if el := r.doc.QuerySelector(selector); el != nil {
			r.lv.Refresh(el)
		}
	})
	_ = obj.Set("reloadSources", func(selector string) {
		if el := r.doc.QuerySelector(selector); el != nil {
			r.lv.ReloadSources(el)
		}
	})
	_ = obj.Set("play", func(selector string) {
		if el := r.doc.QuerySelector(selector); el != nil {
			r.lv.Play(el)
		}
	})
	_ = obj.Set("pause", func(selector string) {
		if el := r.doc.QuerySelector(selector); el != nil {
			r.lv.Pause(el)
		}
	})
	_ = obj.Set("attachAll", func() int {
		return len(r.lv.AttachAll(nil))
	})
	_ = obj.Set("managed", func(selector string) bool {
		el := r.doc.QuerySelector(selector)
		return el != nil && r.lv.Managed(el)
	})

	r.vm.Set("lazyvideo", obj)
}

// installDocument binds a minimal document global: querySelector returns
// an element wrapper exposing the attribute operations scripts need to
// drive the declarative contract.
func (r *Runtime) installDocument() {
	docObj := r.vm.NewObject()

	_ = docObj.Set("querySelector", func(selector string) goja.Value {
		el := r.doc.QuerySelector(selector)
		if el == nil {
			return goja.Null()
		}
		return r.wrapElement(el)
	})

	r.vm.Set("document", docObj)
}

func (r *Runtime) wrapElement(el *dom.Element) *goja.Object {
	obj := r.vm.NewObject()
	_ = obj.Set("tagName", el.TagName())
	_ = obj.Set("getAttribute", func(name string) goja.Value {
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return r.vm.ToValue(el.GetAttribute(name))
	})
	_ = obj.Set("setAttribute", func(name, value string) {
		el.SetAttribute(name, value)
	})
	_ = obj.Set("removeAttribute", func(name string) {
		el.RemoveAttribute(name)
	})
	_ = obj.Set("hasAttribute", func(name string) bool {
		return el.HasAttribute(name)
	})
	return obj
}
