package core

// Logger receives frame and tile timings from the renderer.
// Implementations must be safe to call from the goroutine that joined the frame.
type Logger interface {
	Printf(format string, args ...interface{})
}
