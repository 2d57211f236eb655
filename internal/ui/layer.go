package ui

// Layer is the input layer keys are routed to: the base screen, or the
// modal on top of it.
type Layer int

const (
	LayerBase Layer = iota
	LayerModal
)

func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "Base"
	case LayerModal:
		return "Modal"
	default:
		return "Unknown"
	}
}
