// Package surface provides in-memory elements and a viewport signal bus
// implementing the resizer collaborator interfaces.
//
// A [Window] is the root of a surface tree and the source of resize and
// orientation signals. Surfaces created with [Surface.AddChild] report the
// surface they were added to as their parent, which is how a resizer
// defaults its container.
package surface

import (
	"fmt"
	"sync"

	"github.com/matzehuels/boxfit/pkg/resizer"
)

// Surface is a rectangular element. It is safe for concurrent use.
type Surface struct {
	name   string
	parent *Surface

	mu       sync.RWMutex
	size     resizer.Size
	box      resizer.Box
	applied  int
	children []*Surface
}

// New creates a detached surface with the given layout size.
func New(name string, width, height float64) *Surface {
	return &Surface{name: name, size: resizer.Size{Width: width, Height: height}}
}

// AddChild creates a surface whose parent is s.
func (s *Surface) AddChild(name string, width, height float64) *Surface {
	child := New(name, width, height)
	child.parent = s

	s.mu.Lock()
	s.children = append(s.children, child)
	s.mu.Unlock()
	return child
}

// Name returns the surface name.
func (s *Surface) Name() string { return s.name }

// Children returns the surfaces added to s.
func (s *Surface) Children() []*Surface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Surface(nil), s.children...)
}

// Bounds returns the current layout size.
func (s *Surface) Bounds() resizer.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// SetBox records the visual box written by a resizer.
func (s *Surface) SetBox(b resizer.Box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.box = b
	s.applied++
}

// Box returns the last applied box and whether any box was applied.
func (s *Surface) Box() (resizer.Box, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.box, s.applied > 0
}

// Applied returns how many times SetBox was called.
func (s *Surface) Applied() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

// Parent returns the parent surface, or nil for a root.
func (s *Surface) Parent() resizer.Element {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

// Resize sets the layout size. It emits nothing; see Window.Resize.
func (s *Surface) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = resizer.Size{Width: width, Height: height}
}

func (s *Surface) String() string {
	b := s.Bounds()
	return fmt.Sprintf("%s(%gx%g)", s.name, b.Width, b.Height)
}
