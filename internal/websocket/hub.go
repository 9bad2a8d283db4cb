package seatws

import (
	"encoding/json"

	"github.com/Job-Wilhelm/course-booking/internal/models"
	"github.com/Job-Wilhelm/course-booking/pkg/logger"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub fans seat usage updates out to the subscribers of each course. All
// subscriber bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	direct     chan directMessage
	counts     chan countRequest
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	courseID uuid.UUID
	send     chan []byte
}

type Message struct {
	Type            string    `json:"type"`
	CourseID        uuid.UUID `json:"course_id"`
	SeatsTaken      int       `json:"seats_taken"`
	MaxParticipants int       `json:"max_participants"`
}

type directMessage struct {
	client  *Client
	message *Message
}

type countRequest struct {
	courseID uuid.UUID
	reply    chan int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
		direct:     make(chan directMessage),
		counts:     make(chan countRequest),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, courseID uuid.UUID) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		courseID: courseID,
		send:     make(chan []byte, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.courseID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.courseID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			h.deliver(message)
		case d := <-h.direct:
			h.deliverTo(d.client, d.message)
		case req := <-h.counts:
			req.reply <- len(h.clients[req.courseID])
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe registers the client and only then reads the snapshot, so a seat
// change committed in between still reaches the client as a broadcast.
func (h *Hub) Subscribe(client *Client, snapshot func() (models.SeatUsage, error)) error {
	h.Register(client)
	usage, err := snapshot()
	if err != nil {
		return err
	}
	h.direct <- directMessage{client: client, message: seatMessage(usage)}
	return nil
}

// Subscribers reports how many clients currently follow the course.
func (h *Hub) Subscribers(courseID uuid.UUID) int {
	reply := make(chan int, 1)
	h.counts <- countRequest{courseID: courseID, reply: reply}
	return <-reply
}

// PublishSeats queues an update without blocking. Updates are dropped when
// the queue is full; the next change carries the fresh totals anyway.
func (h *Hub) PublishSeats(usage models.SeatUsage) {
	select {
	case h.broadcast <- seatMessage(usage):
	default:
		logger.Log.Warn("seat feed queue full, dropping update",
			zap.String("course_id", usage.CourseID.String()))
	}
}

func seatMessage(usage models.SeatUsage) *Message {
	return &Message{
		Type:            "seats",
		CourseID:        usage.CourseID,
		SeatsTaken:      usage.SeatsTaken,
		MaxParticipants: usage.MaxParticipants,
	}
}

func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.courseID]
	if !ok {
		return
	}
	if _, exists := set[client]; exists {
		delete(set, client)
		close(client.send)
	}
	if len(set) == 0 {
		delete(h.clients, client.courseID)
	}
}

// deliverTo sends to a single client if it is still subscribed.
func (h *Hub) deliverTo(client *Client, message *Message) {
	if _, ok := h.clients[client.courseID][client]; !ok {
		return
	}
	encoded, err := json.Marshal(message)
	if err != nil {
		logger.Log.Error("seat feed encode message", zap.Error(err))
		return
	}
	select {
	case client.send <- encoded:
	default:
		h.remove(client)
	}
}

func (h *Hub) deliver(message *Message) {
	encoded, err := json.Marshal(message)
	if err != nil {
		logger.Log.Error("seat feed encode message", zap.Error(err))
		return
	}

	set, ok := h.clients[message.CourseID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- encoded:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, message.CourseID)
	}
}

// ReadPump drains client frames until the connection closes. The feed is
// one-way, so incoming payloads are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
