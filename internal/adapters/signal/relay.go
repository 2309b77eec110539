package signal

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/proto"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleMessage(sid core.SessionID, conn *WsSignalConn, data []byte) {
	p, err := proto.Decode[proto.Message](data)
	if err == nil {
		err = ctl.Orch.Chat(sid, p.Text)
	}
	if err != nil {
		ctl.replyError(sid, conn, err)
	}
}

func (ctl *SignalWSController) handleScreenShare(sid core.SessionID, conn *WsSignalConn, data []byte) {
	p, err := proto.Decode[proto.ScreenShare](data)
	if err == nil {
		err = ctl.Orch.ScreenShare(sid, domain.RoomID(p.RoomID), p.StreamID)
	}
	if err != nil {
		ctl.replyError(sid, conn, err)
	}
}

func (ctl *SignalWSController) handlePointer(sid core.SessionID, conn *WsSignalConn, data []byte) {
	p, err := proto.Decode[proto.PointerControl](data)
	if err != nil {
		ctl.replyError(sid, conn, err)
		return
	}
	pt, err := p.Pointer()
	if err == nil {
		err = ctl.Orch.Pointer(sid, domain.RoomID(p.RoomID), pt)
	}
	if err != nil {
		ctl.replyError(sid, conn, err)
	}
}

func (ctl *SignalWSController) handleEndCall(sid core.SessionID, conn *WsSignalConn) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("end call")
	if err := ctl.Orch.EndCall(sid); err != nil {
		ctl.replyError(sid, conn, err)
		return
	}
	_ = conn.TrySend(proto.EncodeReply(proto.TypeLeft))
}
