package stun

import "fmt"

// nodeSource adapts a node to Loadable through its Image. A node without an
// image has nothing to wait for and counts as loaded.
type nodeSource struct {
	n *Node
}

func (ns nodeSource) Loaded() bool {
	return ns.n.Image == nil || ns.n.Image.Loaded()
}

func (ns nodeSource) OnLoad(fn func()) {
	if ns.n.Image != nil {
		ns.n.Image.OnLoad(fn)
	}
}

func (ns nodeSource) OnError(fn func(error)) {
	if ns.n.Image != nil {
		ns.n.Image.OnError(fn)
	}
}

func (ns nodeSource) Err() error {
	if ns.n.Image == nil {
		return nil
	}
	return ns.n.Image.Err()
}

// WaitAllImageLoad runs onReady once every node matching selector has loaded
// its image. Timing comes from Config.JoinFallbackDelay and, when set,
// Config.JoinTimeout; opts are applied after those and override them.
func (s *Scene) WaitAllImageLoad(selector string, onReady func(), opts ...JoinOption) (*Join, error) {
	nodes, err := s.Query(selector)
	if err != nil {
		return nil, fmt.Errorf("wait for images: %w", err)
	}
	sources := make([]Loadable, len(nodes))
	for i, n := range nodes {
		sources[i] = nodeSource{n: n}
	}

	all := []JoinOption{WithFallbackDelay(s.cfg.JoinFallbackDelay)}
	if s.cfg.JoinTimeout > 0 {
		all = append(all, WithTimeout(s.cfg.JoinTimeout, func(pending int) {
			s.debugf("join on %q timed out with %d image(s) pending", selector, pending)
		}))
	}
	all = append(all, opts...)
	return WaitForAll(s.timeline, sources, onReady, all...), nil
}
