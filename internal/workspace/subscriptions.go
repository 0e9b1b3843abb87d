package workspace

import (
	"time"

	"github.com/jask/codepad/internal/workspace/pane"
)

// KeepAliveInterval is how often the keepalive listener pings the channel.
const KeepAliveInterval = 30 * time.Second

// Listener describes an inbound event source. Two listeners with the same Key
// are the same subscription.
type Listener interface {
	Key() string
}

// KeepAliveListener pings the channel every Every and delivers KeepAlive.
type KeepAliveListener struct {
	Token string
	Every time.Duration
}

// CompileFinishedListener delivers CompileFinished.
type CompileFinishedListener struct {
	Token string
}

// DetachedListener delivers WorkspaceDetached when the channel drops.
type DetachedListener struct {
	Token string
}

// AttachedListener delivers WorkspaceAttached when the channel is (re)established.
type AttachedListener struct {
	Token string
}

// PaneListener wraps a listener declared by the pane of Kind. Its events
// come back as PaneMsg with the same kind.
type PaneListener struct {
	Kind     pane.Kind
	Listener pane.Listener
}

func (l KeepAliveListener) Key() string       { return "keepalive:" + l.Token }
func (l CompileFinishedListener) Key() string { return "compile-finished:" + l.Token }
func (l DetachedListener) Key() string        { return "detached:" + l.Token }
func (l AttachedListener) Key() string        { return "attached:" + l.Token }
func (l PaneListener) Key() string            { return "pane:" + l.Kind.String() + ":" + l.Listener.Key() }

// Subscriptions derives the listeners that should be active for s. Exactly
// one of DetachedListener and AttachedListener is present, chosen by
// s.Connected, so connectivity can only flip away from its current value.
func Subscriptions(s State) []Listener {
	subs := []Listener{
		KeepAliveListener{Token: s.Token, Every: KeepAliveInterval},
		CompileFinishedListener{Token: s.Token},
	}
	if s.Connected {
		subs = append(subs, DetachedListener{Token: s.Token})
	} else {
		subs = append(subs, AttachedListener{Token: s.Token})
	}
	if s.Pane != nil {
		kind := s.Pane.Kind()
		for _, l := range s.Pane.Subscriptions() {
			subs = append(subs, PaneListener{Kind: kind, Listener: l})
		}
	}
	return subs
}
