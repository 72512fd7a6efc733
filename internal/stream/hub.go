package stream

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"backend-greentransit/internal/logging"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	channelPrefix  = "greentransit:"
	channelSuffix  = ":events"
	channelPattern = channelPrefix + "*" + channelSuffix
)

// Event is the change notification sent to websocket subscribers.
type Event struct {
	ID    string    `json:"id"`
	Topic string    `json:"topic"`
	Type  string    `json:"type"`
	At    time.Time `json:"at"`
	Data  any       `json:"data,omitempty"`
}

// envelope carries a payload across instances. Origin lets a hub drop
// messages it published itself, since those were already delivered locally.
type envelope struct {
	Origin  string `json:"origin"`
	Payload []byte `json:"payload"`
}

type Hub struct {
	redis   *redis.Client
	log     *zap.Logger
	origin  string
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
	pubsub  *redis.PubSub
	done    chan struct{}
}

type Client struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client, log *zap.Logger) *Hub {
	h := &Hub{
		redis:   redisClient,
		log:     logging.OrNop(log),
		origin:  uuid.NewString(),
		clients: map[string]map[*Client]struct{}{},
		done:    make(chan struct{}),
	}

	if redisClient == nil {
		close(h.done)
		return h
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.pubsub = redisClient.PSubscribe(ctx, channelPattern)
	// Wait for the subscription so events published right after start are not lost.
	if _, err := h.pubsub.Receive(ctx); err != nil {
		h.log.Warn("redis subscribe failed, retrying in background", zap.Error(err))
	}
	go h.subscribeRedis()
	return h
}

// Close stops the Redis subscription.
func (h *Hub) Close() {
	if h.pubsub != nil {
		_ = h.pubsub.Close()
	}
	<-h.done
}

func (h *Hub) Register(topic string) *Client {
	client := &Client{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[topic] == nil {
		h.clients[topic] = map[*Client]struct{}{}
	}
	h.clients[topic][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topicClients, ok := h.clients[client.Topic]; ok {
		if _, ok := topicClients[client]; !ok {
			return
		}
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.clients, client.Topic)
		}
		close(client.Send)
	}
}

// Notify wraps data in an Event and broadcasts it on topic.
func (h *Hub) Notify(ctx context.Context, topic, eventType string, data any) error {
	payload, err := json.Marshal(Event{
		ID:    uuid.NewString(),
		Topic: topic,
		Type:  eventType,
		At:    time.Now().UTC(),
		Data:  data,
	})
	if err != nil {
		return err
	}
	h.Broadcast(ctx, topic, payload)
	return nil
}

// Broadcast delivers payload to local subscribers of topic and publishes it
// for other instances. Slow clients drop messages.
func (h *Hub) Broadcast(ctx context.Context, topic string, payload []byte) {
	h.deliver(topic, payload)

	if h.redis == nil {
		return
	}
	msg, _ := json.Marshal(envelope{Origin: h.origin, Payload: payload})
	if err := h.redis.Publish(ctx, redisChannel(topic), msg).Err(); err != nil {
		h.log.Warn("redis publish failed", zap.String("topic", topic), zap.Error(err))
	}
}

func (h *Hub) deliver(topic string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[topic] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	defer close(h.done)

	for msg := range h.pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			h.log.Warn("dropping malformed stream message", zap.String("channel", msg.Channel), zap.Error(err))
			continue
		}
		if env.Origin == h.origin {
			continue
		}
		h.deliver(topicFromChannel(msg.Channel), env.Payload)
	}
}

func redisChannel(topic string) string {
	return channelPrefix + topic + channelSuffix
}

func topicFromChannel(ch string) string {
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
