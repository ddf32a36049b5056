package command

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubScheduler struct {
	futures map[string]texture.Future
}

func (s *stubScheduler) Schedule(rawURL string) texture.Future {
	f := texture.NewFuture()
	s.futures[rawURL] = f
	return f
}

func (s *stubScheduler) Pending() int {
	return len(s.futures)
}

func newTestSurface() (Surface, panorama.Viewer, *stubScheduler) {
	sched := &stubScheduler{futures: make(map[string]texture.Future)}
	v := panorama.NewViewer(panorama.WithScheduler(sched))
	return NewSurface(v), v, sched
}

func mustRequest(t *testing.T, kind Kind, args any) Request {
	t.Helper()
	req, err := NewRequest(kind, args)
	require.NoError(t, err)
	return req
}

func TestKindWireNames(t *testing.T) {
	for kind, name := range map[Kind]string{
		KindLoadPanorama:   "loadPanorama",
		KindDeletePanorama: "deletePanorama",
		KindShowPanorama:   "showPanorama",
	} {
		require.Equal(t, name, kind.String())
		parsed, err := ParseKind(name)
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}

	_, err := ParseKind("spinPanorama")
	var verr *panorama.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRequestJSONUsesWireNames(t *testing.T) {
	req := mustRequest(t, KindShowPanorama, ShowArgs{URL: "a.jpg"})
	req.ID = "r1"

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"command":"showPanorama"`)

	var back Request
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, KindShowPanorama, back.Kind)
	require.Equal(t, "r1", back.ID)
}

func TestSubmitAssignsIDAndRunsOnLoop(t *testing.T) {
	s, v, _ := newTestSurface()
	var got []Response

	id := s.Submit(mustRequest(t, KindDeletePanorama, DeleteArgs{URL: "a.jpg"}), func(r Response) {
		got = append(got, r)
	})

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Empty(t, got)

	v.Drain()
	require.Len(t, got, 1)
	require.Equal(t, id, got[0].ID)
	require.True(t, got[0].OK())
}

func TestSubmitKeepsCallerID(t *testing.T) {
	s, _, _ := newTestSurface()
	req := mustRequest(t, KindDeletePanorama, DeleteArgs{URL: "a.jpg"})
	req.ID = "caller-1"

	require.Equal(t, "caller-1", s.Submit(req, nil))
}

func TestLoadRepliesAfterTextureSettles(t *testing.T) {
	s, v, sched := newTestSurface()
	var got []Response

	s.Execute(mustRequest(t, KindLoadPanorama, LoadArgs{URL: "a.jpg"}), func(r Response) {
		got = append(got, r)
	})
	require.Empty(t, got)
	_, ok := v.Registry().Lookup("a.jpg")
	require.True(t, ok)

	sched.futures["a.jpg"].Resolve(&common.Texture{Source: "a.jpg"}, nil)
	require.Len(t, got, 1)
	require.True(t, got[0].OK())
	require.Equal(t, KindLoadPanorama, got[0].Kind)
}

func TestLoadPropagatesLoadError(t *testing.T) {
	s, _, sched := newTestSurface()
	var got Response

	s.Execute(mustRequest(t, KindLoadPanorama, LoadArgs{URL: "a.jpg"}), func(r Response) { got = r })
	sched.futures["a.jpg"].Resolve(nil, errors.New("404 Not Found"))

	var lerr *panorama.LoadError
	require.ErrorAs(t, got.Err, &lerr)
	require.Contains(t, got.Error, "404")
}

func TestLoadMissingURLIsValidationError(t *testing.T) {
	s, v, _ := newTestSurface()
	var got Response

	s.Execute(Request{Kind: KindLoadPanorama, Args: json.RawMessage(`{"longitude": 1}`)}, func(r Response) { got = r })

	var verr *panorama.ValidationError
	require.ErrorAs(t, got.Err, &verr)
	require.Zero(t, v.Registry().Len())
}

func TestDeleteNeverFails(t *testing.T) {
	s, _, _ := newTestSurface()
	var got []Response
	reply := func(r Response) { got = append(got, r) }

	s.Execute(mustRequest(t, KindDeletePanorama, DeleteArgs{URL: "missing.jpg"}), reply)
	s.Execute(Request{Kind: KindDeletePanorama}, reply)

	require.Len(t, got, 2)
	for _, r := range got {
		require.True(t, r.OK())
	}
}

func TestShowErrors(t *testing.T) {
	s, v, _ := newTestSurface()
	_, _, err := v.Load(panorama.Info{URL: "a.jpg"})
	require.NoError(t, err)

	var got Response
	reply := func(r Response) { got = r }

	s.Execute(mustRequest(t, KindShowPanorama, ShowArgs{URL: "b.jpg"}), reply)
	var nf *panorama.NotFoundError
	require.ErrorAs(t, got.Err, &nf)

	s.Execute(mustRequest(t, KindShowPanorama, ShowArgs{}), reply)
	var verr *panorama.ValidationError
	require.ErrorAs(t, got.Err, &verr)

	s.Execute(mustRequest(t, KindShowPanorama, ShowArgs{
		URL:        "a.jpg",
		Transition: panorama.TransitionOptions{Easing: "Bouncy"},
	}), reply)
	require.ErrorAs(t, got.Err, &verr)
	require.Nil(t, v.Current())

	s.Execute(mustRequest(t, KindShowPanorama, ShowArgs{URL: "a.jpg"}), reply)
	require.True(t, got.OK())
	require.Equal(t, "a.jpg", v.Current().URL())
}

func TestUnknownKindIsValidationError(t *testing.T) {
	s, _, _ := newTestSurface()
	var got Response

	s.Execute(Request{Kind: Kind(42)}, func(r Response) { got = r })

	var verr *panorama.ValidationError
	require.ErrorAs(t, got.Err, &verr)
}

func TestMalformedArgsIsValidationError(t *testing.T) {
	s, _, _ := newTestSurface()
	var got Response

	s.Execute(Request{Kind: KindShowPanorama, Args: json.RawMessage(`{"url": 7}`)}, func(r Response) { got = r })

	var verr *panorama.ValidationError
	require.ErrorAs(t, got.Err, &verr)
	require.Equal(t, "args", verr.Field)
}

func TestServeAnswersEveryRequest(t *testing.T) {
	s, v, sched := newTestSurface()
	in := strings.NewReader(`
{"id":"1","command":"loadPanorama","args":{"url":"a.jpg","longitude":10,"latitude":20}}
{"id":"2","command":"showPanorama","args":{"url":"a.jpg","transition":{"easing":"Cubic.Out","duration":250}}}
{"id":"3","command":"zoomPanorama"}
{"id":"4","command":"deletePanorama","args":{"url":"zzz.jpg"}}
`)
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), s, in, &out))
	v.Drain()
	sched.futures["a.jpg"].Resolve(&common.Texture{Source: "a.jpg"}, nil)

	byID := map[string]Response{}
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r Response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		byID[r.ID] = r
	}
	require.Len(t, byID, 4)
	require.Empty(t, byID["1"].Error)
	require.Empty(t, byID["2"].Error)
	require.Contains(t, byID["3"].Error, "zoomPanorama")
	require.Empty(t, byID["4"].Error)
	require.Equal(t, "a.jpg", v.Current().URL())
}

func TestServeStopsOnMalformedStream(t *testing.T) {
	s, _, _ := newTestSurface()
	var out bytes.Buffer

	err := Serve(context.Background(), s, strings.NewReader(`{"id":`), &out)

	require.Error(t, err)
	require.Contains(t, out.String(), "malformed JSON")
}

func TestServeHonoursCancelledContext(t *testing.T) {
	s, _, _ := newTestSurface()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Serve(ctx, s, strings.NewReader(`{"command":"deletePanorama"}`), &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestServeCancelInterruptsBlockedRead(t *testing.T) {
	s, _, _ := newTestSurface()
	pr, pw := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- Serve(ctx, s, pr, &bytes.Buffer{}) }()

	cancel()
	select {
	case err := <-errc:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve stayed blocked on the reader after cancel")
	}

	// the reader was closed so the decoding goroutine can exit
	_, err := pw.Write([]byte("{}"))
	require.ErrorIs(t, err, io.ErrClosedPipe)
}
