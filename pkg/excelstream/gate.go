package excelstream

import "context"

// gate runs an initialization function once, in the background, and lets
// any number of callers wait for its result.
type gate struct {
	done chan struct{}
	err  error
}

func newGate(init func() error) *gate {
	g := &gate{done: make(chan struct{})}
	go func() {
		defer close(g.done)
		g.err = init()
	}()
	return g
}

// wait blocks until initialization finished or ctx is done.
func (g *gate) wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
