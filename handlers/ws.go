package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler pushes a signal to connected dashboards whenever a report
// snapshot is freshly derived, so they can re-pull instead of polling.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive settings for cloud hosts that kill idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		report, _ := s.Get("report")
		log.Printf("✅ Client subscribed to report updates: %v", report)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		report, _ := s.Get("report")
		log.Printf("🔌 Client unsubscribed from report updates: %v", report)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request. An optional ?report= query restricts the
// session to one report type; empty means all reports. The key is attached
// at upgrade time because HandleRequest blocks until the session closes.
func (h *WSHandler) HandleWS(c *gin.Context) {
	keys := map[string]interface{}{"report": c.Query("report")}

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys)
	if err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// BroadcastRefresh notifies sessions watching reportType (or everything).
func (h *WSHandler) BroadcastRefresh(reportType string) {
	msg := []byte(`{"type": "report_refreshed", "report": "` + reportType + `"}`)

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		report, exists := q.Get("report")
		return exists && (report == "" || report == reportType)
	})

	if err != nil {
		log.Printf("⚠️ Error broadcasting refresh for %s: %v", reportType, err)
	}
}
