package signal

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/proto"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	p, err := proto.Decode[proto.JoinRoom](data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.replyError(sid, conn, err)
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Str("peer", p.PeerID).Msg("join")
	// The acknowledgement is queued by the orchestrator, ordered with the room's broadcasts.
	if err := ctl.Orch.Join(sid, domain.RoomID(p.RoomID), domain.PeerID(p.PeerID), p.DisplayName); err != nil {
		ctl.replyError(sid, conn, err)
	}
}

// handleLeave leaves the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	if err := ctl.Orch.Leave(sid); err != nil {
		ctl.replyError(sid, conn, err)
		return
	}
	_ = conn.TrySend(proto.EncodeReply(proto.TypeLeft))
}
