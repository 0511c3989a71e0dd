package stun

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is one action of a Script. Click targets either a point or the
// centre of the first visible node matching Selector.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Selector string  `json:"selector,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	MS       int     `json:"ms,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script plays a sequence of clicks, scrolls, waits and screenshots against a
// scene, one step per frame. Attach it with Scene.SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitUntil time.Duration
	done      bool
	err       error
}

// LoadScript parses a JSON script of the form
//
//	{"steps": [
//		{"action": "click", "selector": ".content img"},
//		{"action": "wait", "ms": 500},
//		{"action": "screenshot", "label": "zoomed"},
//		{"action": "scroll", "dy": 40}
//	]}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "click", "scroll", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script to the scene. It advances at the start of every
// Step, before input is processed. Pass nil to detach.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run.
func (sc *Script) Done() bool {
	return sc.done
}

// Err returns the first step failure, such as a selector that matched no
// visible node. The script stops at a failed step.
func (sc *Script) Err() error {
	return sc.err
}

func (sc *Script) step(s *Scene) {
	if sc.done {
		return
	}
	if len(s.injectQueue) > 0 {
		return
	}
	if sc.waitCount > 0 {
		sc.waitCount--
		return
	}
	if sc.waitUntil > 0 {
		if s.timeline.Now() < sc.waitUntil {
			return
		}
		sc.waitUntil = 0
	}
	if sc.cursor >= len(sc.steps) {
		sc.done = true
		return
	}

	st := sc.steps[sc.cursor]
	sc.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		x, y := st.X, st.Y
		if st.Selector != "" {
			var err error
			x, y, err = s.nodeCenter(st.Selector)
			if err != nil {
				sc.err = fmt.Errorf("script step %d: %w", sc.cursor-1, err)
				sc.done = true
				return
			}
		}
		s.InjectClick(x, y)
	case "scroll":
		s.InjectScroll(st.DY)
	case "wait":
		if st.Frames > 0 {
			sc.waitCount = st.Frames - 1
		}
		if st.MS > 0 {
			sc.waitUntil = s.timeline.Now() + time.Duration(st.MS)*time.Millisecond
		}
	}

	if sc.cursor >= len(sc.steps) && sc.waitCount == 0 && sc.waitUntil == 0 && len(s.injectQueue) == 0 {
		sc.done = true
	}
}

// nodeCenter returns the viewport centre of the first visible, non-hidden
// node matching selector.
func (s *Scene) nodeCenter(selector string) (x, y float64, err error) {
	nodes, err := s.Query(selector)
	if err != nil {
		return 0, 0, err
	}
	for _, n := range nodes {
		if !n.Visible || n.Hidden() {
			continue
		}
		c := s.visualRect(n).Center()
		return c.X, c.Y, nil
	}
	return 0, 0, fmt.Errorf("no visible node matches %q", selector)
}
