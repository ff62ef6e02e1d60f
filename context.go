package sheeter

import "fmt"

type contextKind uint8

const (
	ctxRoot contextKind = iota
	ctxObject
	ctxArray
)

func (k contextKind) String() string {
	switch k {
	case ctxObject:
		return "Object"
	case ctxArray:
		return "Array"
	default:
		return "Root"
	}
}

// writeContext is one level of the caller's nesting.
type writeContext struct {
	kind contextKind
	// gotName is set in an object between a field name and its value.
	gotName bool
}

// contextStack mirrors the nesting of the event stream. The root context is
// never popped.
type contextStack struct {
	frames []writeContext
}

func newContextStack() contextStack {
	frames := make([]writeContext, 1, 4)
	frames[0] = writeContext{kind: ctxRoot}
	return contextStack{frames: frames}
}

func (s *contextStack) top() *writeContext { return &s.frames[len(s.frames)-1] }

// depth is the index of the current context; the root is 0.
func (s *contextStack) depth() int { return len(s.frames) - 1 }

// parentKind returns the kind of the context enclosing the current one.
// The root is its own parent.
func (s *contextStack) parentKind() contextKind {
	if len(s.frames) < 2 {
		return ctxRoot
	}
	return s.frames[len(s.frames)-2].kind
}

func (s *contextStack) enter(kind contextKind) {
	s.frames = append(s.frames, writeContext{kind: kind})
}

func (s *contextStack) exit(kind contextKind) error {
	top := s.top()
	if top.kind != kind || len(s.frames) == 1 {
		return fmt.Errorf("%w: current context not %s but %s", ErrStructural, kind, top.kind)
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

func (s *contextStack) fieldName(name string) error {
	top := s.top()
	if top.kind != ctxObject {
		return fmt.Errorf("%w: cannot write field name %q outside an object (context %s)", ErrStructural, name, top.kind)
	}
	if top.gotName {
		return fmt.Errorf("%w: cannot write field name %q, expecting a value", ErrStructural, name)
	}
	top.gotName = true
	return nil
}

// value records that a value is written into the current context.
func (s *contextStack) value(what string) error {
	top := s.top()
	if top.kind != ctxObject {
		return nil
	}
	if !top.gotName {
		return fmt.Errorf("%w: cannot %s, value without a preceding field name", ErrStructural, what)
	}
	top.gotName = false
	return nil
}
