package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/dispatch"
	"github.com/ppiankov/gapdash/internal/view"
	"github.com/ppiankov/gapdash/internal/worker"
)

const (
	defaultWSWriteWait = 10 * time.Second
	defaultWSPongWait  = 60 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsInbound struct {
	Type  string   `json:"type"`
	Input string   `json:"input,omitempty"`
	Value []string `json:"value,omitempty"`
}

type wsOutbound struct {
	Type      string            `json:"type"`
	Session   string            `json:"session,omitempty"`
	Output    string            `json:"output,omitempty"`
	Spec      *chart.Spec       `json:"spec,omitempty"`
	Selection view.Selection    `json:"selection,omitempty"`
	Updates   []dispatch.Update `json:"updates,omitempty"`
	Code      string            `json:"code,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// HandleWS runs one live dashboard session. The client sends
// {"type":"select","input":id,"value":[...]} and receives one "update" per
// affected graph. A rejected selection is reported and not applied.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	writeWait := h.app.Config.Server.WSWriteWait
	if writeWait <= 0 {
		writeWait = defaultWSWriteWait
	}
	pongWait := h.app.Config.Server.WSPongWait
	if pongWait <= 0 {
		pongWait = defaultWSPongWait
	}
	pingEvery := (pongWait * 9) / 10

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	client := worker.ClientKey(r.RemoteAddr, r.Header.Get("X-Forwarded-For"))
	session := uuid.NewString()
	log := h.log.WithField("session", session)
	wsSessions.Inc()
	defer wsSessions.Dec()
	log.Debug("websocket session opened")
	defer log.Debug("websocket session closed")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("websocket set read deadline failed")
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	writeCh := make(chan wsOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// the session owns its selection; nothing else reads or writes it
	sel := h.selection(r.URL.Query())
	updates, err := h.app.Table.RenderAll(sel)
	if err != nil {
		_, code := classify(err)
		pushWS(writeCh, wsOutbound{Type: "error", Code: code, Message: err.Error()})
		sel = h.app.Layout.Defaults()
		updates, err = h.app.Table.RenderAll(sel)
		if err != nil {
			log.WithError(err).Error("render defaults")
			cancel()
			<-writerDone
			return
		}
	}
	pushWS(writeCh, wsOutbound{Type: "init", Session: session, Selection: sel, Updates: updates})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			cancel()
			<-writerDone
			return
		}
		// the upgrade passed the HTTP limiter once; each message draws from the same bucket
		if h.limiter != nil {
			if err := h.limiter.Wait(ctx, client); err != nil {
				cancel()
				<-writerDone
				return
			}
		}
		var in wsInbound
		if err := json.Unmarshal(data, &in); err != nil {
			wsMessages.WithLabelValues("malformed").Inc()
			pushWS(writeCh, wsOutbound{Type: "error", Code: "invalid_argument", Message: "decode message: " + err.Error()})
			continue
		}
		msgType := strings.ToLower(strings.TrimSpace(in.Type))
		wsMessages.WithLabelValues(messageLabel(msgType)).Inc()

		switch msgType {
		case "ping":
			pushWS(writeCh, wsOutbound{Type: "pong"})
		case "select":
			next := sel.Clone()
			next.Set(strings.TrimSpace(in.Input), in.Value...)
			updates, err := h.app.Table.Dispatch(next, strings.TrimSpace(in.Input))
			if err != nil {
				_, code := classify(err)
				pushWS(writeCh, wsOutbound{Type: "error", Code: code, Message: err.Error()})
				continue
			}
			sel = next
			for _, u := range updates {
				pushWS(writeCh, wsOutbound{Type: "update", Output: u.Output, Spec: u.Spec})
			}
		case "":
			pushWS(writeCh, wsOutbound{Type: "error", Code: "invalid_argument", Message: "type is required"})
		default:
			pushWS(writeCh, wsOutbound{Type: "error", Code: "invalid_argument", Message: "unsupported type: " + msgType})
		}
	}
}

func messageLabel(msgType string) string {
	switch msgType {
	case "ping", "select":
		return msgType
	default:
		return "other"
	}
}

// pushWS queues a message; when the queue is full the oldest message is dropped
func pushWS(writeCh chan wsOutbound, out wsOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
