package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"taxibook/internal/domain"
)

// Event is the payload pushed to every connected dispatcher console.
type Event struct {
	Type       string  `json:"type"`
	BookingID  int64   `json:"booking_id"`
	CustomerID int64   `json:"customer_id,omitempty"`
	TaxiID     int64   `json:"taxi_id,omitempty"`
	Fare       float64 `json:"fare,omitempty"`
	Payment    string  `json:"payment_status,omitempty"`
	At         string  `json:"at"`
}

type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewHub() *Hub {
	h := &Hub{
		connections: make(map[string]*websocket.Conn),
		events:      make(chan Event, 64),
		done:        make(chan struct{}),
	}
	go h.run()
	return h
}

// run is the only goroutine writing to subscriber connections. Gorilla
// conns do not support concurrent writers, so notifications from
// concurrent request handlers are serialized through the events channel.
func (h *Hub) run() {
	for {
		select {
		case ev := <-h.events:
			h.broadcast(ev)
		case <-h.done:
			return
		}
	}
}

// publish hands the event to the broadcaster without blocking the
// calling request handler. When the buffer is full the event is dropped;
// the feed is a live view, not a durable log.
func (h *Hub) publish(ev Event) {
	select {
	case <-h.done:
	case h.events <- ev:
	default:
	}
}

// Register adds a subscriber connection and returns its id.
func (h *Hub) Register(conn *websocket.Conn) string {
	id := uuid.NewString()

	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.connections[id] = conn

	return id
}

func (h *Hub) Unregister(id string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[id]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, id)
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// broadcast fans an event out to all subscribers. Connections that fail
// to write are dropped. Only run calls this.
func (h *Hub) broadcast(ev Event) {
	h.mutex.RLock()
	conns := make(map[string]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mutex.RUnlock()

	for id, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}

func (h *Hub) BookingCreated(b *domain.Booking) {
	h.publish(Event{
		Type:       "booking.created",
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		TaxiID:     b.TaxiID,
		Fare:       b.Fare,
		Payment:    string(b.PaymentStatus),
		At:         time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) BookingUpdated(b *domain.Booking) {
	h.publish(Event{
		Type:       "booking.updated",
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		TaxiID:     b.TaxiID,
		Fare:       b.Fare,
		Payment:    string(b.PaymentStatus),
		At:         time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) BookingCancelled(bookingID, customerID int64) {
	h.publish(Event{
		Type:       "booking.cancelled",
		BookingID:  bookingID,
		CustomerID: customerID,
		At:         time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) PaymentReported(b *domain.Booking) {
	h.publish(Event{
		Type:      "booking.payment",
		BookingID: b.ID,
		TaxiID:    b.TaxiID,
		Payment:   string(b.PaymentStatus),
		At:        time.Now().UTC().Format(time.RFC3339),
	})
}
