package spoof

import (
	"runtime"

	"github.com/ruteri/pixelprops/interfaces"
)

// initialStackDepth sizes the first capture; deeper stacks grow the buffer.
const initialStackDepth = 64

// RuntimeStack reports the calling goroutine's stack.
type RuntimeStack struct {
	// Skip drops this many frames above CallStack's caller.
	Skip int
}

// CallStack captures the whole live stack, innermost frame first.
func (s RuntimeStack) CallStack() []interfaces.Frame {
	pcs := make([]uintptr, initialStackDepth)
	var n int
	for {
		// Skip runtime.Callers and CallStack itself.
		n = runtime.Callers(2+s.Skip, pcs)
		if n < len(pcs) {
			break
		}
		pcs = make([]uintptr, 2*len(pcs))
	}
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]interfaces.Frame, 0, n)
	for {
		f, more := frames.Next()
		out = append(out, interfaces.Frame{
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		})
		if !more {
			break
		}
	}
	return out
}

// StaticStack is a stack captured elsewhere, e.g. supplied by a remote host.
type StaticStack []interfaces.Frame

// CallStack returns the captured frames.
func (s StaticStack) CallStack() []interfaces.Frame {
	return s
}
