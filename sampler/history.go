package sampler

// DefaultHistoryCapacity is the number of points kept per series.
const DefaultHistoryCapacity = 60

// history is a fixed-capacity FIFO of points. Once full, each push evicts
// the oldest point.
type history struct {
	buf   []Point
	start int
	n     int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &history{buf: make([]Point, capacity)}
}

func (h *history) push(p Point) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = p
		h.n++
		return
	}
	h.buf[h.start] = p
	h.start = (h.start + 1) % len(h.buf)
}

func (h *history) len() int {
	return h.n
}

// points returns a chronological copy of the buffer.
func (h *history) points() []Point {
	out := make([]Point, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}
