package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"thinking_styles_backend/pkg/logger"
	"thinking_styles_backend/pkg/monitoring"
	"thinking_styles_backend/pkg/security"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	shardCount     = 32
	notifyChannel  = "notifications"
)

const (
	EventAssessmentSubmitted = "ASSESSMENT_SUBMITTED"
	EventReportGenerated     = "REPORT_GENERATED"
)

// Event 推送给前端的消息
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Notifier 推送失败只记日志，不影响业务流程
type Notifier interface {
	Notify(ctx context.Context, studentID uint, evt Event)
}

type pubSubMessage struct {
	TargetUsers []uint          `json:"targetUsers"`
	Payload     json.RawMessage `json:"payload"`
}

type Client struct {
	hub    *NotificationHub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// readPump 只用于感知断开和处理 pong，上行消息丢弃
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stopped:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("WebSocket unexpected close", zap.Error(err), zap.Uint("userId", c.userID))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// 同一用户可能有多个连接（手机和电脑）
type shard struct {
	clients map[uint]map[*Client]struct{}
	mu      sync.RWMutex
}

// NotificationHub 向学生及其家长推送测评和报告事件。
// 事件经 Redis 频道广播，每个实例只投递给本机连接，支持多实例部署。
type NotificationHub struct {
	shards     [shardCount]*shard
	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}
	Redis      *redis.Client
	Users      *UserService
	upgrader   websocket.Upgrader
}

func NewNotificationHub(rdb *redis.Client, users *UserService, origins *security.Origins) *NotificationHub {
	h := &NotificationHub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
		Redis:      rdb,
		Users:      users,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origins.Allowed(origin)
		},
	}
	for i := 0; i < shardCount; i++ {
		h.shards[i] = &shard{clients: make(map[uint]map[*Client]struct{})}
	}
	return h
}

func (h *NotificationHub) getShard(userID uint) *shard {
	return h.shards[userID%shardCount]
}

// Start 订阅成功后返回，ctx 结束时关闭所有连接。
// 订阅失败后 hub 不再接受新连接。
func (h *NotificationHub) Start(ctx context.Context) error {
	pubsub := h.Redis.Subscribe(ctx, notifyChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		close(h.stopped)
		return err
	}
	go h.run(ctx, pubsub)
	return nil
}

func (h *NotificationHub) run(ctx context.Context, pubsub *redis.PubSub) {
	defer close(h.stopped)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			s := h.getShard(client.userID)
			s.mu.Lock()
			if s.clients[client.userID] == nil {
				s.clients[client.userID] = make(map[*Client]struct{})
			}
			s.clients[client.userID][client] = struct{}{}
			s.mu.Unlock()
			monitoring.NotificationClients.Inc()

		case client := <-h.unregister:
			s := h.getShard(client.userID)
			s.mu.Lock()
			if conns, ok := s.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					monitoring.NotificationClients.Dec()
				}
				if len(conns) == 0 {
					delete(s.clients, client.userID)
				}
			}
			s.mu.Unlock()

		case msg, ok := <-ch:
			if !ok {
				h.closeAll()
				return
			}
			var ps pubSubMessage
			if err := json.Unmarshal([]byte(msg.Payload), &ps); err != nil {
				logger.Log.Error("PubSub unmarshal error", zap.Error(err))
				continue
			}
			h.deliver(ps.TargetUsers, ps.Payload)
		}
	}
}

// deliver 投递到本机连接，发送缓冲满时丢弃
func (h *NotificationHub) deliver(userIDs []uint, payload []byte) {
	for _, id := range userIDs {
		s := h.getShard(id)
		s.mu.RLock()
		for client := range s.clients[id] {
			select {
			case client.send <- payload:
			default:
			}
		}
		s.mu.RUnlock()
	}
}

func (h *NotificationHub) closeAll() {
	closed := 0
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.Lock()
		for userID, conns := range s.clients {
			for client := range conns {
				close(client.send)
				closed++
			}
			delete(s.clients, userID)
		}
		s.mu.Unlock()
	}
	monitoring.NotificationClients.Sub(float64(closed))
	logger.Log.Info("NotificationHub stopped", zap.Int("closedConnections", closed))
}

// Connected 本机上该用户的连接数
func (h *NotificationHub) Connected(userID uint) int {
	s := h.getShard(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients[userID])
}

func (h *NotificationHub) Notify(ctx context.Context, studentID uint, evt Event) {
	targets, err := h.Users.AudienceOf(studentID)
	if err != nil {
		logger.Log.Warn("查询通知对象失败", zap.Uint("userId", studentID), zap.Error(err))
		return
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Error("通知序列化失败", zap.String("type", evt.Type), zap.Error(err))
		return
	}
	msg, _ := json.Marshal(pubSubMessage{TargetUsers: targets, Payload: payload})
	if err := h.Redis.Publish(ctx, notifyChannel, msg).Err(); err != nil {
		logger.Log.Warn("通知发布失败", zap.String("type", evt.Type), zap.Error(err))
		return
	}
	monitoring.NotificationsPushed.WithLabelValues(evt.Type).Inc()
}

func (h *NotificationHub) ServeWs(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warn("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
	}
	select {
	case h.register <- client:
	case <-h.stopped:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
