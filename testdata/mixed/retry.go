package mixed

import (
	"fmt"
	"time"
)

const MAX_RETRIES = 3

// DefaultBackoff is the delay between attempts.
var DefaultBackoff = 250 * time.Millisecond

var attempts int

// GetStatus reports the last status and prints it.
func GetStatus(code int) string {
	fmt.Println("status", code)
	return "ok"
}

func Retry(fn func() error, verbose bool, strict bool) error {
	for i := 0; i < MAX_RETRIES; i++ {
		attempts++
		if err := fn(); err == nil {
			return nil
		}
		time.Sleep(DefaultBackoff * 7)
	}
	return fmt.Errorf("gave up after %d attempts", attempts)
}

// Walk visits every node.
func Walk(visit func(func(func()))) {
	visit(func(next func()) {
		run(func() {
			run(func() {
				next()
			})
		})
	})
}

func run(f func()) { f() }

func unused() {}
