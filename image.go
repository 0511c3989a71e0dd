package stun

import "github.com/hajimehoshi/ebiten/v2"

// Image is a picture resource that finishes loading at some later point.
// It satisfies Loadable and ErrorNotifier. Load and error listeners each fire
// at most once, and only one of the two outcomes ever happens.
type Image struct {
	Src string

	img     *ebiten.Image
	width   float64
	height  float64
	loaded  bool
	err     error
	onLoad  []func()
	onError []func(error)
}

// NewImage returns a pending image for src.
func NewImage(src string) *Image {
	return &Image{Src: src}
}

// NewLoadedImage wraps an already decoded ebiten image.
func NewLoadedImage(src string, img *ebiten.Image) *Image {
	im := &Image{Src: src}
	im.setPixels(img)
	im.loaded = true
	return im
}

func (im *Image) setPixels(img *ebiten.Image) {
	im.img = img
	if img != nil {
		b := img.Bounds()
		im.width = float64(b.Dx())
		im.height = float64(b.Dy())
	}
}

// Loaded reports whether the image finished loading successfully.
func (im *Image) Loaded() bool {
	return im.loaded
}

// Err returns the load error, if loading failed.
func (im *Image) Err() error {
	return im.err
}

// Size returns the natural size of the image, zero until loaded.
func (im *Image) Size() (w, h float64) {
	return im.width, im.height
}

// Pixels returns the decoded image, or nil before loading.
func (im *Image) Pixels() *ebiten.Image {
	return im.img
}

// OnLoad registers fn to run when the image finishes loading.
func (im *Image) OnLoad(fn func()) {
	if im.loaded || im.err != nil {
		return
	}
	im.onLoad = append(im.onLoad, fn)
}

// OnError registers fn to run if loading fails.
func (im *Image) OnError(fn func(error)) {
	if im.loaded || im.err != nil {
		return
	}
	im.onError = append(im.onError, fn)
}

// Resolve marks the image loaded with the given pixels and fires the load
// listeners. Ignored if the image already loaded or failed.
func (im *Image) Resolve(img *ebiten.Image) {
	if im.loaded || im.err != nil {
		return
	}
	im.setPixels(img)
	im.loaded = true
	fns := im.onLoad
	im.onLoad, im.onError = nil, nil
	for _, fn := range fns {
		fn()
	}
}

// Fail marks the image failed and fires the error listeners. Ignored if the
// image already loaded or failed.
func (im *Image) Fail(err error) {
	if im.loaded || im.err != nil || err == nil {
		return
	}
	im.err = err
	fns := im.onError
	im.onLoad, im.onError = nil, nil
	for _, fn := range fns {
		fn(err)
	}
}
