package orch

import (
	"errors"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/metrics"
	"github.com/dkeye/Huddle/internal/proto"
	"github.com/rs/zerolog/log"
)

var ErrUnknownSession = errors.New("unknown session")

type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomRegistry
	Policy   app.Policy
}

func New(reg *app.Registry, rooms core.RoomRegistry, policy app.Policy) *Orchestrator {
	return &Orchestrator{Registry: reg, Rooms: rooms, Policy: policy}
}

// Broadcast delivers ev to every current member of room except exclude
// (empty excludes nobody).
func (o *Orchestrator) Broadcast(room domain.RoomID, ev domain.Event, exclude domain.PeerID) core.PublishResult {
	res := o.publish(room, ev, exclude)
	o.settle(room, res)
	return res
}

// publish fans ev out under the room lock. Callers already holding a session
// lock must hand the result to settle only after releasing it.
func (o *Orchestrator) publish(room domain.RoomID, ev domain.Event, exclude domain.PeerID) core.PublishResult {
	frame, err := proto.EncodeEvent(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode event")
		return core.PublishResult{}
	}
	var res core.PublishResult
	o.Rooms.Visit(room, func(members []core.MemberSession) {
		res = deliver(members, frame, exclude)
	})
	metrics.Mark("events."+string(ev.Kind), 1)
	return res
}

// deliver never blocks: a closed connection is skipped, a full one is
// reported as dropped. One recipient's failure never affects the others.
func deliver(members []core.MemberSession, frame core.Frame, exclude domain.PeerID) core.PublishResult {
	res := core.PublishResult{}
	for _, m := range members {
		if exclude != "" && m.Meta().Peer == exclude {
			continue
		}
		switch err := m.Signal().TrySend(frame); {
		case err == nil:
			res.SendTo++
		case errors.Is(err, core.ErrConnClosed):
		default:
			res.Dropped = append(res.Dropped, m)
		}
	}
	return res
}

// settle accounts a publish result and applies the backpressure policy.
// It must run without any session or room lock held.
func (o *Orchestrator) settle(room domain.RoomID, res core.PublishResult) {
	metrics.Mark("broadcast.sent", int64(res.SendTo))
	if len(res.Dropped) == 0 {
		return
	}
	metrics.Mark("broadcast.dropped", int64(len(res.Dropped)))
	log.Debug().Str("module", "orch").Str("room", string(room)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			o.Kick(slow.SID())
		case app.DropFrame, app.NoAction:
		}
	}
}

func (o *Orchestrator) session(sid core.SessionID) (*app.Session, error) {
	sess, ok := o.Registry.GetSession(sid)
	if !ok {
		return nil, ErrUnknownSession
	}
	return sess, nil
}
