// Package live streams a server-hosted bubble field to the browser over a
// WebSocket. Each connection gets its own field and driver; the page only
// applies the transforms it receives.
package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/portfolio/internal/bubble"
	"github.com/Zachkp/portfolio/internal/store"
)

const (
	mountTimeout = 5 * time.Second
	idleTimeout  = 10 * time.Minute
	writeTimeout = 5 * time.Second
	outBuffer    = 8
)

// Recorder receives a summary of every finished session.
type Recorder interface {
	RecordSession(ctx context.Context, s store.Session) error
}

type Server struct {
	skills []bubble.Skill
	hz     int
	rec    Recorder
	log    *log.Logger

	upgrader websocket.Upgrader
	active   atomic.Int64
}

func NewServer(skills []bubble.Skill, hz int, rec Recorder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if hz <= 0 {
		hz = bubble.DefaultFrameRate
	}
	return &Server{
		skills: skills,
		hz:     hz,
		rec:    rec,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
	}
}

// Active reports the number of open sessions.
func (s *Server) Active() int64 { return s.active.Load() }

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Mount: the page must report its viewport first.
		_ = conn.SetReadDeadline(time.Now().Add(mountTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		vp, err := ParseViewport(raw)
		if err != nil {
			closeWith(conn, websocket.ClosePolicyViolation, "expected viewport")
			return
		}

		s.active.Add(1)
		defer s.active.Add(-1)
		s.serve(conn, vp)
	}
}

func (s *Server) serve(conn *websocket.Conn, vp bubble.Viewport) {
	sid := uuid.NewString()
	started := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan []byte, outBuffer)
	hello, _ := json.Marshal(HelloMsg{Type: TypeHello, Session: sid, Hz: s.hz, Tokens: len(s.skills)})
	out <- hello

	// Writer goroutine.
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for {
			select {
			case <-ctx.Done():
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					cancel()
					_ = conn.Close()
					return
				}
			}
		}
	}()

	field := bubble.NewField(s.skills)
	surface := bubble.SurfaceFunc(func(fr bubble.Frame) {
		b, err := EncodeFrame(fr)
		if err != nil {
			s.log.Printf("live %s: encode frame: %v", sid, err)
			return
		}
		select {
		case out <- b:
		default:
			// Slow client; it gets the next frame instead.
		}
	})
	driver := bubble.NewDriver(field, surface, bubble.WithFrameRate(s.hz), bubble.WithLogger(s.log))
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = driver.Run(ctx, vp)
	}()

	last := vp
	for {
		_ = conn.SetReadDeadline(time.Now().Add(idleTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		next, err := ParseViewport(raw)
		if err != nil {
			continue
		}
		last = next
		driver.Resize(next)
	}

	// Unmount.
	cancel()
	<-runDone
	closeWith(conn, websocket.CloseNormalClosure, "bye")
	select {
	case <-writeDone:
	case <-time.After(500 * time.Millisecond):
	}

	if s.rec == nil {
		return
	}
	sess := store.Session{
		ID:        sid,
		StartedAt: started,
		EndedAt:   time.Now(),
		Frames:    driver.Frames(),
		Width:     last.Width,
		Height:    last.Height,
		Tokens:    len(s.skills),
	}
	recCtx, recCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer recCancel()
	if err := s.rec.RecordSession(recCtx, sess); err != nil {
		s.log.Printf("live %s: record session: %v", sid, err)
	}
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}
