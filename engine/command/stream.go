package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
)

// wireRequest keeps the command name as text so an unknown name still yields a response
// carrying the caller's ID.
type wireRequest struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

type decodeResult struct {
	wire wireRequest
	err  error
}

// Serve reads a stream of JSON requests from r, submits each to s and writes one JSON
// response per request to w. Responses are written in completion order, so loads may
// answer after later commands. Serve returns nil at EOF, ctx.Err() when cancelled, or the
// first decode error. Cancellation interrupts a blocked read: r is closed when it is an
// io.Closer. Replies still pending when Serve returns are written when they settle.
//
// Parameters:
//   - ctx: cancels reading
//   - s: the command surface
//   - r: the request stream
//   - w: the response stream
//
// Returns:
//   - error: the reason reading stopped
func Serve(ctx context.Context, s Surface, r io.Reader, w io.Writer) error {
	dec := json.NewDecoder(r)
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	write := func(resp Response) {
		mu.Lock()
		defer mu.Unlock()
		// a failed write means the peer is gone; nobody is left to tell
		_ = enc.Encode(resp)
	}

	// decoding runs on its own goroutine so a read blocked on r cannot delay cancellation
	decoded := make(chan decodeResult)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			var d decodeResult
			d.err = dec.Decode(&d.wire)
			select {
			case decoded <- d:
			case <-stop:
				return
			}
			if d.err != nil {
				return
			}
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var d decodeResult
		select {
		case <-ctx.Done():
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return ctx.Err()
		case d = <-decoded:
		}

		if d.err != nil {
			if errors.Is(d.err, io.EOF) {
				return nil
			}
			write(Response{Error: (&panorama.ValidationError{Field: "request", Reason: "malformed JSON", Err: d.err}).Error()})
			return fmt.Errorf("failed to decode command: %w", d.err)
		}

		kind, err := ParseKind(d.wire.Command)
		if err != nil {
			write(Response{ID: d.wire.ID, Error: err.Error(), Err: err})
			continue
		}
		s.Submit(Request{ID: d.wire.ID, Kind: kind, Args: d.wire.Args}, write)
	}
}
