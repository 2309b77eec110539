package signal

import "github.com/dkeye/Huddle/internal/proto"

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	_ = conn.TrySend(proto.EncodeReply(proto.TypePong))
}
