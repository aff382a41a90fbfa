package mockstore

// mulberry32: маленький детерминированный 32-битный генератор.
// Один и тот же seed всегда даёт одну и ту же последовательность.
type mulberry32 struct {
	state uint32
}

func newRand(seed uint32) *mulberry32 {
	return &mulberry32{state: seed}
}

// float возвращает число в [0, 1)
func (m *mulberry32) float() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// intn возвращает число в [0, n)
func (m *mulberry32) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(m.float() * float64(n))
}

// between возвращает число в [lo, hi] включительно
func (m *mulberry32) between(lo, hi int) int {
	return lo + m.intn(hi-lo+1)
}

func pick[T any](r *mulberry32, items []T) T {
	return items[r.intn(len(items))]
}
