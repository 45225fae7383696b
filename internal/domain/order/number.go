package order

import (
	"crypto/rand"
	"fmt"
	"time"
)

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber generates an order number of the form ORD-YYYYMMDD-XXXXXX
// where the suffix is six random uppercase alphanumerics. Uniqueness is
// enforced by the database; callers retry on collision.
func NewOrderNumber(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), string(buf))
}
