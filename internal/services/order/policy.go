package order

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DefaultTaxRate is the campus sales tax applied when config supplies none.
const DefaultTaxRate = 0.08

// Tax computes the tax amount for a subtotal at the given rate, rounded
// half-up to cents.
func Tax(subtotal, rate float64) float64 {
	return RoundToCents(subtotal * rate)
}

// RoundToCents rounds a dollar amount half-up to two decimal places.
func RoundToCents(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// GenerateOrderNumber produces a human-legible order number in the form
// ORD-YYYYMMDD-<unix millis>-<3-digit random>. The date prefix keeps numbers
// roughly sortable by creation time; the random suffix makes same-millisecond
// collisions overwhelmingly unlikely. The order store still treats a
// duplicate as retryable, never fatal.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%d-%03d",
		now.UTC().Format("20060102"),
		now.UnixMilli(),
		rand.Intn(1000))
}
