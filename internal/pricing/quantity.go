package pricing

const (
	DefaultQuantity = 1000
	DefaultMin      = 1
	DefaultMax      = 1000000
)

// ClampQuantity keeps the requested quantity inside [lo, hi].
func ClampQuantity(requested, lo, hi int) int {
	return max(lo, min(hi, requested))
}

// ParseQuantity coerces raw user input to an integer; non-numeric input becomes 0.
func ParseQuantity(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok {
		return 0
	}
	return n
}
