package command

import (
	"encoding/json"
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/google/uuid"
)

// handler runs one command on the viewer loop and calls done exactly once.
type handler func(v panorama.Viewer, args json.RawMessage, done func(error))

var dispatch = map[Kind]handler{
	KindLoadPanorama:   handleLoad,
	KindDeletePanorama: handleDelete,
	KindShowPanorama:   handleShow,
}

// surface is the implementation of the Surface interface.
type surface struct {
	viewer panorama.Viewer
	poster texture.Poster
}

// Surface accepts remote commands from any goroutine and executes them on the viewer loop.
type Surface interface {
	// Submit queues req onto the viewer loop. reply fires once: right after the command
	// runs for delete and show, and once the texture settles for load.
	//
	// Parameters:
	//   - req: the request; an empty ID is replaced with a UUID
	//   - reply: receives the response, may be nil
	//
	// Returns:
	//   - string: the request ID
	Submit(req Request, reply ReplyFunc) string

	// Execute runs req on the calling goroutine, which must be the viewer loop.
	//
	// Parameters:
	//   - req: the request
	//   - reply: receives the response, may be nil
	Execute(req Request, reply ReplyFunc)
}

var _ Surface = &surface{}

// NewSurface creates a Surface bound to v. Requests are posted to v unless WithPoster
// names another loop.
//
// Parameters:
//   - v: the viewer
//   - options: functional options to configure the surface
//
// Returns:
//   - Surface: the newly created surface
func NewSurface(v panorama.Viewer, options ...SurfaceBuilderOption) Surface {
	if v == nil {
		panic("command: NewSurface requires a non-nil Viewer")
	}
	s := &surface{viewer: v, poster: v}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *surface) Submit(req Request, reply ReplyFunc) string {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	s.poster.Post(func() {
		s.Execute(req, reply)
	})
	return req.ID
}

func (s *surface) Execute(req Request, reply ReplyFunc) {
	var once sync.Once
	done := func(err error) {
		once.Do(func() {
			resp := Response{ID: req.ID, Kind: req.Kind, Err: err}
			if err != nil {
				resp.Error = err.Error()
				common.Logger().Info("command: failed", "id", req.ID, "command", req.Kind, "error", err)
			} else {
				common.Logger().Debug("command: done", "id", req.ID, "command", req.Kind)
			}
			if reply != nil {
				reply(resp)
			}
		})
	}

	h, ok := dispatch[req.Kind]
	if !ok {
		done(&panorama.ValidationError{Field: "command", Reason: "unknown command " + req.Kind.String()})
		return
	}
	h(s.viewer, req.Args, done)
}

func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &panorama.ValidationError{Field: "args", Reason: "malformed JSON", Err: err}
	}
	return nil
}

func handleLoad(v panorama.Viewer, raw json.RawMessage, done func(error)) {
	var args LoadArgs
	if err := decodeArgs(raw, &args); err != nil {
		done(err)
		return
	}
	_, fut, err := v.Load(args)
	if err != nil {
		done(err)
		return
	}
	fut.Then(func(_ *common.Texture, err error) {
		done(err)
	})
}

func handleDelete(v panorama.Viewer, raw json.RawMessage, done func(error)) {
	var args DeleteArgs
	if err := decodeArgs(raw, &args); err != nil {
		done(err)
		return
	}
	v.Delete(args.URL)
	done(nil)
}

func handleShow(v panorama.Viewer, raw json.RawMessage, done func(error)) {
	var args ShowArgs
	if err := decodeArgs(raw, &args); err != nil {
		done(err)
		return
	}
	done(v.Show(args.URL, args.Transition))
}
