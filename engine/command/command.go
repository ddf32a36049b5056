// package command exposes the viewer's remote command protocol: loadPanorama,
// deletePanorama and showPanorama requests decoded from JSON and dispatched onto the
// viewer loop.
package command

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
)

// Kind identifies a remote command.
type Kind int

const (
	// KindUnknown is the zero value and never dispatches.
	KindUnknown Kind = iota
	// KindLoadPanorama registers a panorama and starts its texture load.
	KindLoadPanorama
	// KindDeletePanorama removes a panorama.
	KindDeletePanorama
	// KindShowPanorama crossfades to a registered panorama.
	KindShowPanorama
)

var kindNames = map[Kind]string{
	KindLoadPanorama:   "loadPanorama",
	KindDeletePanorama: "deletePanorama",
	KindShowPanorama:   "showPanorama",
}

// String returns the command's wire name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a wire name to its Kind.
//
// Parameters:
//   - name: the wire name, e.g. "showPanorama"
//
// Returns:
//   - Kind: the command kind
//   - error: a *panorama.ValidationError for an unknown name
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindUnknown, &panorama.ValidationError{Field: "command", Reason: fmt.Sprintf("unknown command %q", name)}
}

// MarshalText encodes the wire name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a wire name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Request is one remote invocation.
type Request struct {
	// ID correlates the response. Submit assigns a UUID when empty.
	ID string `json:"id,omitempty"`
	// Kind selects the command.
	Kind Kind `json:"command"`
	// Args holds the command's JSON arguments.
	Args json.RawMessage `json:"args,omitempty"`
}

// Response is the single result of a Request.
type Response struct {
	ID   string `json:"id"`
	Kind Kind   `json:"command,omitempty"`
	// Error is the failure message, empty on success.
	Error string `json:"error,omitempty"`
	// Err is the typed failure for in-process callers.
	Err error `json:"-"`
}

// OK reports whether the command succeeded.
func (r Response) OK() bool {
	return r.Err == nil
}

// ReplyFunc receives a command's response. It is called exactly once, on the viewer loop.
type ReplyFunc func(Response)

// LoadArgs are the loadPanorama arguments.
type LoadArgs = panorama.Info

// DeleteArgs are the deletePanorama arguments.
type DeleteArgs struct {
	URL string `json:"url"`
}

// ShowArgs are the showPanorama arguments.
type ShowArgs struct {
	URL        string                     `json:"url"`
	Transition panorama.TransitionOptions `json:"transition"`
}

// NewRequest builds a Request with args marshalled to JSON.
//
// Parameters:
//   - kind: the command kind
//   - args: LoadArgs, DeleteArgs, ShowArgs or any JSON-encodable value
//
// Returns:
//   - Request: the request, without an ID
//   - error: an error if args cannot be encoded
func NewRequest(kind Kind, args any) (Request, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return Request{}, fmt.Errorf("failed to encode %s args: %w", kind, err)
	}
	return Request{Kind: kind, Args: raw}, nil
}
