package stun

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 40), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"photos/a.png": {Data: encodePNG(t, 4, 3)},
		"photos/b.png": {Data: encodePNG(t, 2, 2)},
		"broken.png":   {Data: []byte("not a png")},
	}
}

// settle waits for background decodes and applies their results.
func settle(s *Scene, l *Loader) {
	l.Wait()
	s.Step(frame)
}

func TestLoaderResolves(t *testing.T) {
	s := NewScene(DefaultConfig())
	store := &recordingStore{}
	s.SetEntityStore(store)
	l := NewLoader(s, testFS(t))
	defer l.Close()

	n := NewElement("img", "a")
	n.EntityID = 3
	im := l.Load(n, "photos/a.png")
	if n.Image != im || im.Loaded() {
		t.Fatal("Load should attach a pending image")
	}
	loads := 0
	im.OnLoad(func() { loads++ })

	settle(s, l)
	if !im.Loaded() || im.Err() != nil {
		t.Fatalf("loaded=%v err=%v", im.Loaded(), im.Err())
	}
	if w, h := im.Size(); w != 4 || h != 3 {
		t.Errorf("Size = %vx%v, want 4x3", w, h)
	}
	if n.Width != 4 || n.Height != 3 {
		t.Errorf("node size = %vx%v, want 4x3", n.Width, n.Height)
	}
	if im.Pixels() == nil {
		t.Error("Pixels should be set")
	}
	if loads != 1 {
		t.Errorf("load listeners ran %d times", loads)
	}
	if len(store.events) != 1 || store.events[0].Type != EventImageLoad || store.events[0].EntityID != 3 {
		t.Errorf("events = %+v", store.events)
	}
}

func TestLoaderKeepsExplicitSize(t *testing.T) {
	s := NewScene(DefaultConfig())
	l := NewLoader(s, testFS(t))
	n := NewElement("img", "b")
	n.Width, n.Height = 300, 200
	l.Load(n, "photos/b.png")
	settle(s, l)
	if n.Width != 300 || n.Height != 200 {
		t.Errorf("node size = %vx%v, want 300x200", n.Width, n.Height)
	}
}

func TestLoaderFailures(t *testing.T) {
	tests := []struct {
		path   string
		target error
		text   string
	}{
		{"missing.png", fs.ErrNotExist, `load image "missing.png": `},
		{"broken.png", image.ErrFormat, `load image "broken.png": decode: `},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s := NewScene(DefaultConfig())
			store := &recordingStore{}
			s.SetEntityStore(store)
			l := NewLoader(s, testFS(t))
			n := NewElement("img", "x")

			im := l.Load(n, tt.path)
			var got error
			im.OnError(func(err error) { got = err })
			settle(s, l)

			if im.Loaded() || got == nil || got != im.Err() {
				t.Fatalf("loaded=%v listener err=%v Err()=%v", im.Loaded(), got, im.Err())
			}
			if !errors.Is(got, tt.target) {
				t.Errorf("err = %v, want wrapping %v", got, tt.target)
			}
			if !strings.HasPrefix(got.Error(), tt.text) {
				t.Errorf("err = %q, want prefix %q", got, tt.text)
			}
			if len(store.events) != 1 || store.events[0].Type != EventImageError {
				t.Errorf("events = %+v", store.events)
			}
		})
	}
}

func TestLoaderClosed(t *testing.T) {
	s := NewScene(DefaultConfig())
	l := NewLoader(s, testFS(t))
	l.Close()
	im := l.Load(NewElement("img", "a"), "photos/a.png")
	settle(s, l)
	if !errors.Is(im.Err(), context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", im.Err())
	}
}

func TestImageOutcomeIsFinal(t *testing.T) {
	im := NewImage("x")
	loads, fails := 0, 0
	im.OnLoad(func() { loads++ })
	im.OnError(func(error) { fails++ })
	im.Resolve(nil)
	im.Resolve(nil)
	im.Fail(errors.New("late"))
	if loads != 1 || fails != 0 || im.Err() != nil {
		t.Errorf("loads=%d fails=%d err=%v", loads, fails, im.Err())
	}
	im.OnLoad(func() { loads++ })
	if loads != 1 {
		t.Error("listener added after load must not run")
	}
}
