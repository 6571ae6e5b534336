package wms

import "context"

// Pending is the deferred result of a background fetch.
type Pending struct {
	done chan struct{}
	body string
	err  error
}

// Async runs fetch in the background and returns its deferred result.
func Async(fetch func() (string, error)) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.body, p.err = fetch()
		if p.err != nil {
			p.body = ""
		}
	}()
	return p
}

// Go starts a GET in the background and returns immediately.
func (c *Client) Go(ctx context.Context, ref string) *Pending {
	return Async(func() (string, error) {
		body, _, err := c.get(ctx, ref)
		return string(body), err
	})
}

// Done is closed once the fetch has finished, successfully or not.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the fetch finishes and returns its body.
func (p *Pending) Wait() (string, error) {
	<-p.done
	return p.body, p.err
}
