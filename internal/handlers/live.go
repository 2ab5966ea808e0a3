package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/mongo"

	"janazaboard/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type liveSnapshot struct {
	Type  string                `json:"type"`
	Data  []models.Announcement `json:"data"`
	Count int                   `json:"count"`
}

// LiveFeed pushes the full current upcoming-announcement set to every
// connected client whenever the underlying collection changes. Consumers
// always replace their local copy; no diffs are sent.
type LiveFeed struct {
	db             *mongo.Database
	sampleFallback bool

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewLiveFeed(db *mongo.Database, sampleFallback bool) *LiveFeed {
	return &LiveFeed{
		db:             db,
		sampleFallback: sampleFallback,
		conns:          make(map[*websocket.Conn]bool),
	}
}

// Handle upgrades the connection, sends the current snapshot and keeps the
// connection registered until the client goes away.
func (f *LiveFeed) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("[LIVE] [ERROR] websocket upgrade failed:", err)
			return
		}

		snapshot := f.currentSnapshot(c.Request.Context())
		if err := conn.WriteJSON(snapshot); err != nil {
			log.Println("[LIVE] [ERROR] initial snapshot write failed:", err)
			conn.Close()
			return
		}

		f.register(conn)
		log.Println("[LIVE] [INFO] client connected")

		// Drain until the client disconnects, then unregister.
		go func() {
			defer func() {
				f.unregister(conn)
				conn.Close()
				log.Println("[LIVE] [INFO] client disconnected")
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// Run watches the announcements collection and re-broadcasts the full
// snapshot after every change. When change streams are unavailable it falls
// back to periodic polling; a broken stream degrades to an empty snapshot
// before reconnecting.
func (f *LiveFeed) Run(ctx context.Context) {
	for {
		stream, err := f.db.Collection("announcements").Watch(ctx, mongo.Pipeline{})
		if err != nil {
			log.Println("[LIVE] [ERROR] change stream unavailable, polling:", err)
			f.poll(ctx)
			return
		}

		for stream.Next(ctx) {
			f.broadcast(f.currentSnapshot(ctx))
		}

		if err := stream.Err(); err != nil {
			log.Println("[LIVE] [ERROR] change stream broken:", err)
			f.broadcast(liveSnapshot{Type: "snapshot", Data: []models.Announcement{}, Count: 0})
		}
		stream.Close(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func (f *LiveFeed) poll(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.broadcast(f.currentSnapshot(ctx))
		}
	}
}

func (f *LiveFeed) currentSnapshot(ctx context.Context) liveSnapshot {
	now := time.Now()

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	announcements, err := fetchUpcoming(queryCtx, f.db, now)
	if err != nil {
		log.Println("[LIVE] [ERROR] snapshot query failed, degrading:", err)
		if f.sampleFallback {
			announcements = sampleAnnouncements(now)
		} else {
			announcements = []models.Announcement{}
		}
	}

	announcements = decorateAnnouncements(announcements)
	return liveSnapshot{Type: "snapshot", Data: announcements, Count: len(announcements)}
}

func (f *LiveFeed) broadcast(snapshot liveSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.conns {
		if err := conn.WriteJSON(snapshot); err != nil {
			log.Println("[LIVE] [ERROR] broadcast write failed, dropping client:", err)
			delete(f.conns, conn)
			conn.Close()
		}
	}
}

func (f *LiveFeed) register(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conns[conn] = true
}

func (f *LiveFeed) unregister(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.conns, conn)
}
