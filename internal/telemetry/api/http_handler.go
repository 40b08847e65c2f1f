package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ridloal/storefront/internal/platform/logger"
	"github.com/ridloal/storefront/internal/telemetry/service"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type TelemetryHandler struct {
	simulator   service.Simulator
	recommender service.Recommender
}

func NewTelemetryHandler(sim service.Simulator, rec service.Recommender) *TelemetryHandler {
	return &TelemetryHandler{simulator: sim, recommender: rec}
}

func (h *TelemetryHandler) RegisterRoutes(router *gin.RouterGroup) {
	telemetryRoutes := router.Group("/telemetry")
	{
		telemetryRoutes.GET("/visitors", h.GetPageVisitors)
		telemetryRoutes.GET("/stats", h.GetStats)
		telemetryRoutes.GET("/stream", h.Stream)
	}
	router.GET("/recommendations", h.GetRecommendation)
}

func (h *TelemetryHandler) GetPageVisitors(c *gin.Context) {
	c.JSON(http.StatusOK, h.simulator.PageVisitors())
}

func (h *TelemetryHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.simulator.Snapshot())
}

func (h *TelemetryHandler) GetRecommendation(c *gin.Context) {
	rec, err := h.recommender.Recommend(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoProducts) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, context.Canceled) {
			c.JSON(http.StatusRequestTimeout, gin.H{"error": "Recommendation cancelled"})
			return
		}
		logger.Error("GetRecommendation Hdl: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recommendation"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Stream mengirim snapshot saat ini lalu setiap update berikutnya lewat websocket
func (h *TelemetryHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Stream: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.simulator.Subscribe()
	defer unsubscribe()

	// Pesan dari client diabaikan; loop baca hanya untuk mendeteksi koneksi tertutup
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeJSON(conn, h.simulator.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(conn, snap); err != nil {
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
