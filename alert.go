package stun

import "time"

// AlertStatus selects the style of a popup alert.
type AlertStatus string

const (
	AlertSuccess AlertStatus = "success"
	AlertInfo    AlertStatus = "info"
	AlertWarning AlertStatus = "warning"
	AlertError   AlertStatus = "error"
)

const (
	// ClassAlert marks the alert node created by PopAlert.
	ClassAlert = "stun-alert"

	alertWidth       = 320
	alertHeight      = 40
	alertTop         = 20
	alertInDuration  = 300 * time.Millisecond
	alertOutDuration = 260 * time.Millisecond
)

var alertColors = map[AlertStatus]Color{
	AlertSuccess: {R: 0.30, G: 0.69, B: 0.31, A: 1},
	AlertInfo:    {R: 0.13, G: 0.59, B: 0.95, A: 1},
	AlertWarning: {R: 1.00, G: 0.60, B: 0.00, A: 1},
	AlertError:   {R: 0.96, G: 0.26, B: 0.21, A: 1},
}

// PopAlert shows a message pinned to the top of the viewport. It slides in,
// stays for delay (Config.AlertDelay when zero or negative), then slides out
// and hides itself. The alert node is created on first use and reused after
// that; a new call interrupts whatever the previous one was doing.
func (s *Scene) PopAlert(status AlertStatus, text string, delay time.Duration) *Node {
	if delay <= 0 {
		delay = s.cfg.AlertDelay
	}
	n := s.alertNode()
	for st := range alertColors {
		n.RemoveClass(ClassAlert + "-" + string(st))
	}
	n.AddClass(ClassAlert + "-" + string(status))
	c, ok := alertColors[status]
	if !ok {
		c = alertColors[AlertInfo]
	}
	n.Color = c
	n.Text = text
	n.X = (s.viewport.Width - n.Width) / 2

	s.StopAnimations(n)
	n.Visible = true
	n.TranslateY = -n.Height
	n.Alpha = 0

	var in *Animation
	in = s.Animate(n, Keyframe{TranslateY: 0, Alpha: 1, Props: PropTranslate | PropAlpha}, AnimateOptions{
		Duration: alertInDuration,
		Complete: func() {
			in.Reverse(AnimateOptions{
				Delay:    delay,
				Duration: alertOutDuration,
				Complete: func() { n.Visible = false },
			})
		},
	})
	return n
}

func (s *Scene) alertNode() *Node {
	for _, c := range s.root.children {
		if c.HasClass(ClassAlert) && !c.IsDisposed() {
			return c
		}
	}
	n := NewElement("div", "alert")
	n.AddClass(ClassAlert)
	n.Fixed = true
	n.Width, n.Height = alertWidth, alertHeight
	n.Y = alertTop
	n.Padding = Insets{Top: 12, Right: 16, Bottom: 12, Left: 16}
	s.root.AddChild(n)
	return n
}
