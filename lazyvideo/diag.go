package lazyvideo

import (
	"log/slog"
	"strings"

	"github.com/spurwing-main/lazyloadvideo/dom"
)

// diagnostics routes configuration warnings and debug traces through an
// slog.Logger. Debug output is gated by the global flag set at New time
// or by a per-element data-lazyvideo-debug attribute.
type diagnostics struct {
	logger *slog.Logger
	debug  bool
}

func newDiagnostics(logger *slog.Logger, debug bool) *diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &diagnostics{logger: logger, debug: debug}
}

// warn reports a non-fatal configuration problem. Execution continues
// unaffected.
func (d *diagnostics) warn(el *dom.Element, msg string, args ...any) {
	d.logger.Warn(msg, append([]any{slog.String("element", describeElement(el))}, args...)...)
}

// trace reports a lifecycle step when diagnostics are enabled globally
// or on the element.
func (d *diagnostics) trace(el *dom.Element, msg string, args ...any) {
	if !d.debug && (el == nil || !boolAttr(el, AttrDebug, false)) {
		return
	}
	d.logger.Debug(msg, append([]any{slog.String("element", describeElement(el))}, args...)...)
}

func describeElement(el *dom.Element) string {
	if el == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(el.LocalName())
	if id := el.Id(); id != "" {
		b.WriteString("#")
		b.WriteString(id)
	}
	return b.String()
}
