// Package http holds the REST handlers around the signaling hub.
package http

import (
	"net/http"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
)

type RoomResponse struct {
	ID          domain.RoomID   `json:"id"`
	MemberCount int             `json:"member_count"`
	Members     []domain.Member `json:"members"`
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func ListRooms(rooms core.RoomRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms.List()})
	}
}

// GetRoom answers 404 for rooms without members: empty and absent are the same.
func GetRoom(rooms core.RoomRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := domain.RoomID(c.Param("room"))
		var members []domain.Member
		ok := rooms.Visit(id, func(ms []core.MemberSession) {
			members = make([]domain.Member, 0, len(ms))
			for _, m := range ms {
				members = append(members, *m.Meta())
			}
		})
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, RoomResponse{ID: id, MemberCount: len(members), Members: members})
	}
}

func ICEServers(cfg webrtc.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": cfg.ICEServers})
	}
}

func Metrics(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
	metrics.WriteOnce(c.Writer)
}
