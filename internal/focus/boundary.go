package focus

import "modalstack/internal/dom"

// Boundary holds the first and last focusable descendants of a trapped container.
type Boundary struct {
	First *dom.Element
	Last  *dom.Element
}

// FindBoundary queries container for its focusable descendants in document
// order. It returns false when there are none. With a single focusable
// element First and Last are the same element.
func FindBoundary(container *dom.Element) (Boundary, bool) {
	if container == nil {
		return Boundary{}, false
	}
	found := container.QueryAll((*dom.Element).Focusable)
	if len(found) == 0 {
		return Boundary{}, false
	}
	return Boundary{First: found[0], Last: found[len(found)-1]}, true
}
