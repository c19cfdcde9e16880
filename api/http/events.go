// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"context"
	"encoding/binary"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	natsio "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/rest.utils"

	"github.com/mendersoftware/deviceregistry/app"
	"github.com/mendersoftware/deviceregistry/client/nats"
	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/scope"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// HdrKeyOrigin is the Origin header checked on websocket upgrades
	HdrKeyOrigin = "Origin"

	channelSize = 25
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     allowAllOrigins,
}

// EventsController streams the device events of the caller's tenant
type EventsController struct {
	app  app.App
	nats nats.Client
}

// NewEventsController returns a new EventsController
func NewEventsController(app app.App, nc nats.Client) *EventsController {
	return &EventsController{
		app:  app,
		nats: nc,
	}
}

// Stream responds to GET /devices/events by upgrading the connection to a
// websocket and forwarding the device events the caller may see.
func (h EventsController) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)
	sc := scopeFromContext(c)

	var tenantID string
	if idata := identity.FromContext(ctx); idata != nil {
		tenantID = idata.Tenant
	}

	msgChan := make(chan *natsio.Msg, channelSize)
	sub, err := h.nats.ChanSubscribe(model.GetDeviceEventSubject(tenantID), msgChan)
	if err != nil {
		l.Error(err)
		rest.RenderError(c, http.StatusInternalServerError,
			errors.New("failed to subscribe to device events"))
		return
	}
	//nolint:errcheck
	defer sub.Unsubscribe()

	upgrader := wsUpgrader
	upgrader.Error = func(
		w http.ResponseWriter, r *http.Request, s int, e error) {
		rest.RenderError(c, s, e)
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Error(errors.Wrap(err,
			"unable to upgrade the request to websocket protocol"))
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cancelID := h.app.RegisterShutdownCancel(cancel)
	defer h.app.UnregisterShutdownCancel(cancelID)

	go func() {
		// Keep reading so that ping, pong and close frames are handled.
		var err error
		for ; err == nil; _, _, err = conn.NextReader() {
		}
		cancel()
	}()

	//nolint:errcheck
	h.websocketWriter(ctx, conn, sc, msgChan)
}

func websocketPing(conn *websocket.Conn) bool {
	pongWaitString := strconv.Itoa(int(pongWait.Seconds()))
	if err := conn.WriteControl(
		websocket.PingMessage,
		[]byte(pongWaitString),
		time.Now().Add(writeWait),
	); err != nil {
		return false
	}
	return true
}

func writerFinalizer(conn *websocket.Conn, e *error, l *log.Logger) {
	err := *e
	if err != nil {
		if !websocket.IsUnexpectedCloseError(errors.Cause(err)) {
			errMsg := err.Error()
			errBody := make([]byte, len(errMsg)+2)
			binary.BigEndian.PutUint16(errBody,
				websocket.CloseInternalServerErr)
			copy(errBody[2:], errMsg)
			errClose := conn.WriteControl(
				websocket.CloseMessage,
				errBody,
				time.Now().Add(writeWait),
			)
			if errClose != nil {
				err = errors.Wrapf(err,
					"error sending websocket close frame: %s",
					errClose.Error(),
				)
			}
		}
		l.Errorf("websocket closed with error: %s", err.Error())
	} else {
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(writeWait),
		)
	}
	conn.Close()
}

// websocketWriter forwards the events published on the tenant subject
// which concern devices visible to the caller, and periodically pings the
// connection. It returns when the context is done or a write fails.
func (h EventsController) websocketWriter(
	ctx context.Context,
	conn *websocket.Conn,
	sc scope.Scope,
	msgChan <-chan *natsio.Msg,
) (err error) {
	l := log.FromContext(ctx)
	defer writerFinalizer(conn, &err, l)

	err = conn.SetReadDeadline(time.Now().Add(pongWait))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	conn.SetPongHandler(func(string) error {
		ticker.Reset(pingPeriod)
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg := <-msgChan:
			if msg == nil {
				continue
			}
			var event model.DeviceEvent
			if err := msgpack.Unmarshal(msg.Data, &event); err != nil {
				l.Warnf("malformed device event: %s", err)
				continue
			}
			if !sc.Owns(event.Owner) {
				continue
			}
			err = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err == nil {
				err = conn.WriteJSON(event)
			}
			if err != nil {
				return errors.Wrap(err, "failed to write device event")
			}

		case <-ticker.C:
			if !websocketPing(conn) {
				return errors.New("connection timeout")
			}
		}
	}
}
