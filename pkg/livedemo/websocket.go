package livedemo

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mnohosten/changetrack/pkg/changeset"
	"github.com/mnohosten/changetrack/pkg/reactive"
	"github.com/mnohosten/changetrack/pkg/subject"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// changeStreamHub is the adaptation of ChangeStreamManager/
// ChangeStreamConnection: there, one connection tailed one oplog-backed
// change stream; here, one connection subscribes to one subject.Cache and
// gets every published change set pushed to it as JSON, starting with the
// synthesized full-snapshot batch.
type changeStreamHub struct {
	items   *subject.Cache[string, Item]
	itemsMu *sync.Mutex
	mu      sync.Mutex
	conns   map[*changeStreamConn]struct{}
}

type changeStreamConn struct {
	conn *websocket.Conn
	sub  reactive.Disposable
}

func newChangeStreamHub(items *subject.Cache[string, Item], itemsMu *sync.Mutex) *changeStreamHub {
	return &changeStreamHub{items: items, itemsMu: itemsMu, conns: make(map[*changeStreamConn]struct{})}
}

func (h *changeStreamHub) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("livedemo: websocket upgrade failed: %v", err)
		return
	}

	sc := &changeStreamConn{conn: conn}
	h.mu.Lock()
	h.conns[sc] = struct{}{}
	h.mu.Unlock()

	h.itemsMu.Lock()
	sc.sub = h.items.Subscribe(reactive.Observer[changeset.KeyedChangeSet[string, Item]]{
		OnNext: func(cs changeset.KeyedChangeSet[string, Item]) {
			if err := conn.WriteJSON(renderChangeSet(cs)); err != nil {
				h.removeConn(sc)
			}
		},
		OnCompleted: func() { h.removeConn(sc) },
	})
	h.itemsMu.Unlock()

	// Drain (and discard) incoming frames so the read side stays live and
	// Gorilla's ping/pong control handling keeps working; this feed is
	// server-to-client only.
	go func() {
		defer h.removeConn(sc)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

func (h *changeStreamHub) removeConn(sc *changeStreamConn) {
	h.mu.Lock()
	_, ok := h.conns[sc]
	delete(h.conns, sc)
	h.mu.Unlock()
	if !ok {
		return
	}
	if sc.sub != nil {
		h.itemsMu.Lock()
		sc.sub.Dispose()
		h.itemsMu.Unlock()
	}
	sc.conn.Close()
}

func (h *changeStreamHub) closeAll() {
	h.mu.Lock()
	conns := make([]*changeStreamConn, 0, len(h.conns))
	for sc := range h.conns {
		conns = append(conns, sc)
	}
	h.mu.Unlock()
	for _, sc := range conns {
		h.removeConn(sc)
	}
}
