package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/citygrid/city"
)

const (
	writeWait    = 1 * time.Second
	pubResolution = 100 * time.Millisecond
	pingResolution = 200 * time.Millisecond
	pongWait      = pingResolution * 4
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errPongDeadlineExceeded = errors.New("observer: client disconnect, pong deadline exceeded")

// observer serves a websocket endpoint that pushes a city.Snapshot to
// every connected client at a fixed cadence, independent of the
// simulation's own tick rate. One observer instance per connection; a
// new one is created each time a client hits the handler.
type observer struct {
	c    *city.City
	conn *websocket.Conn
}

// serveObserver upgrades r to a websocket and blocks serving c's snapshots
// to it until the client disconnects or an unrecoverable error occurs.
func serveObserver(c *city.City, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("observer: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	o := &observer{c: c, conn: conn}
	if err := o.sync(r.Context()); err != nil && !errors.Is(err, errPongDeadlineExceeded) {
		log.Printf("observer: session ended: %v", err)
	}
}

// sync runs the read-liveness, ping, and publish loops concurrently and
// returns once any of them errors or the client goes away.
func (o *observer) sync(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error { return o.readMessages(groupCtx) })
	group.Go(func() error { return o.pingPong(groupCtx) })
	group.Go(func() error { return o.publish(groupCtx) })

	return group.Wait()
}

// readMessages drains and discards anything the client sends; this
// observer is push-only, but a read loop must run for the pong handler
// registered in pingPong to ever fire.
func (o *observer) readMessages(ctx context.Context) error {
	for {
		if _, _, err := o.conn.ReadMessage(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (o *observer) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	o.conn.SetPongHandler(func(_ string) error {
		select {
		case pong <- struct{}{}:
		case <-ctx.Done():
		}
		return nil
	})

	ticks := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			if time.Since(lastPong) > pongWait {
				return errPongDeadlineExceeded
			}
			if err := o.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := o.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

// publish pushes a snapshot at most once per pubResolution: the city
// ticks far faster than any client needs to render, so snapshots taken
// faster than that are simply dropped.
func (o *observer) publish(ctx context.Context) error {
	ticks := channerics.NewTicker(ctx.Done(), pubResolution)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			if err := o.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := o.conn.WriteJSON(o.c.Snapshot()); err != nil {
				return fmt.Errorf("observer: publish failed: %w", err)
			}
		}
	}
}
