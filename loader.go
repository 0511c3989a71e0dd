package stun

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/semaphore"
)

// Loader decodes image files from a file system in the background and hands
// the results back to the scene. At most Config.LoaderWorkers files are
// decoded at once.
type Loader struct {
	scene *Scene
	fsys  fs.FS
	sem   *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader creates a loader reading from fsys.
func NewLoader(s *Scene, fsys fs.FS) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		scene:  s,
		fsys:   fsys,
		sem:    semaphore.NewWeighted(int64(s.cfg.LoaderWorkers)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Load assigns a pending image for path to n and starts decoding it. The
// image resolves or fails during a later Scene.Step. Once loaded, n takes
// the image's natural size unless its Width and Height are already set.
func (l *Loader) Load(n *Node, path string) *Image {
	im := NewImage(path)
	n.Image = im
	im.OnLoad(func() {
		if n.Width == 0 && n.Height == 0 {
			n.Width, n.Height = im.Size()
		}
		l.scene.emit(InteractionEvent{Type: EventImageLoad, EntityID: n.EntityID})
	})
	im.OnError(func(err error) {
		l.scene.debugf("%v", err)
		l.scene.emit(InteractionEvent{Type: EventImageError, EntityID: n.EntityID})
	})

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.decode(path)
		l.scene.Post(func() {
			if err != nil {
				im.Fail(fmt.Errorf("load image %q: %w", path, err))
				return
			}
			im.Resolve(ebiten.NewImageFromImage(img))
		})
	}()
	return im
}

func (l *Loader) decode(path string) (image.Image, error) {
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// Wait blocks until every started load has posted its result to the scene.
// The results are applied on the next Step.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close abandons loads still waiting for a worker; they fail with
// context.Canceled. Loads already decoding finish normally.
func (l *Loader) Close() {
	l.cancel()
}
