// Package stun is the interaction core of an image gallery page, rendered
// with [Ebitengine].
//
// It provides a small CSS-like page tree, click-to-zoom for images, a join
// that waits for a set of images to load, debounce and throttle wrappers, and
// tweened animations (via [gween]). Time is a deterministic [Timeline] that
// advances only when the scene steps, so everything can be driven frame by
// frame in tests.
//
// # Quick start
//
//	cfg, err := stun.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := stun.NewScene(cfg)
//	loader := stun.NewLoader(scene, os.DirFS("photos"))
//	for i, name := range files {
//		img := stun.NewElement("img", name)
//		img.AddClass("content-img")
//		img.Y = float64(i) * 320
//		loader.Load(img, name)
//		scene.Root().AddChild(img)
//	}
//	scene.WaitAllImageLoad(".content-img", func() {
//		scene.RegisterZoomBehavior(".content-img")
//	})
//	log.Fatal(stun.Run(scene, stun.RunConfig{Title: "Gallery", Width: 1024, Height: 768}))
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Page tree
//
// Every element is a [Node] with a tag, a name and a set of classes, so it
// can be found with a [Selector] such as ".content img:not(.hide)". X and Y
// place the border box inside the parent's content box; Width and Height
// are the content box, grown by Padding and Border. TranslateX, TranslateY,
// ScaleX and ScaleY are a visual transform that never affects layout.
// Nodes with the "hide" class keep their space but are neither drawn nor hit.
//
// Clicks bubble from the hit node to the root and then to the document
// listeners registered with [Scene.OnClick], unless a listener calls
// [ClickEvent.StopPropagation]. [Scene.OnScroll] reports document scrolling.
//
// [Scene.OnKey] reports key presses. [Scene.RegisterPostHotkeys] and
// [Scene.RegisterRevealToggle] wire Ctrl+Arrow post navigation and a
// slide-in panel on top of it.
//
// # Time
//
// [Scene.Step] runs posted callbacks, processes one input event, fires due
// timers and advances animations. [Debounce], [Throttle] and [WaitForAll]
// take a [Clock]; pass [Scene.Clock] to run them on scene time.
//
// # Zoom
//
// [Scene.RegisterZoomBehavior] makes matching nodes zoomable. A [Zoomer]
// holds at most one session, moving through [ZoomIdle], [ZoomZooming],
// [ZoomZoomed] and [ZoomClosing]. A click anywhere closes the session at
// once; scrolling closes it after the scroll has been quiet for
// Config.ScrollCloseDelay.
//
// # Debug mode
//
// [Scene.SetDebugMode] (or STUN_DEBUG=true) enables checks for disposed-node
// use and logs conditions that are otherwise absorbed silently, such as
// ignored zoom activations and timed-out joins.
//
// # Scripts and screenshots
//
// [LoadScript] parses a JSON list of clicks, scrolls, waits and screenshots.
// Attached with [Scene.SetScript], it plays one step per frame through the
// same inject queue as [Scene.InjectClick]. [Scene.Screenshot] writes the
// next drawn frame to Config.ScreenshotDir.
//
// # ECS
//
// The ecs sub-module publishes interaction events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package stun
