package tracking

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-facets/pkg/facets"
	"github.com/matst80/slask-facets/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitTracking struct {
	country    string
	connection *amqp.Connection
}

const trackingPrefix = "global"

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	ret := RabbitTracking{
		country: country,
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, trackingPrefix, messaging.FilterTracking)
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

const sendTimeout = 5 * time.Second

// send runs after the request finished, so it uses its own deadline.
func (t *RabbitTracking) send(data any) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return messaging.SendChange(ctx, t.connection, trackingPrefix, messaging.FilterTracking, data)
}

type BaseEvent struct {
	Id        string `json:"id"`
	SessionId int    `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Event     uint16 `json:"event"`
}

const (
	sessionEvent uint16 = 0
	filterEvent  uint16 = 1
)

type SessionEvent struct {
	*BaseEvent
	UserAgent string `json:"user_agent,omitempty"`
	Ip        string `json:"ip,omitempty"`
	Language  string `json:"language,omitempty"`
}

type FilterEvent struct {
	*BaseEvent
	Handle       string                 `json:"handle"`
	Active       []facets.ActiveFilter  `json:"active"`
	Filters      []facets.ProductFilter `json:"filters"`
	ProductCount int                    `json:"noi"`
	Referer      string                 `json:"referer,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func newBaseEvent(event uint16, sessionId int, country string) *BaseEvent {
	return &BaseEvent{Id: uuid.NewString(), Event: event, SessionId: sessionId, Country: country}
}

func NewSessionEvent(sessionId int, country string, r *http.Request) SessionEvent {
	return SessionEvent{
		BaseEvent: newBaseEvent(sessionEvent, sessionId, country),
		Language:  r.Header.Get("Accept-Language"),
		UserAgent: r.UserAgent(),
		Ip:        clientIp(r),
	}
}

func NewFilterEvent(sessionId int, country string, view FilterView, r *http.Request) FilterEvent {
	return FilterEvent{
		BaseEvent:    newBaseEvent(filterEvent, sessionId, country),
		Handle:       view.Handle,
		Active:       view.Active,
		Filters:      view.Filters,
		ProductCount: view.ProductCount,
		Referer:      r.Header.Get("Referer"),
	}
}

func (rt *RabbitTracking) TrackSession(sessionId int, r *http.Request) {
	if err := rt.send(NewSessionEvent(sessionId, rt.country, r)); err != nil {
		log.Println("Error sending session event: ", err)
	}
}

func (rt *RabbitTracking) TrackFilters(sessionId int, view FilterView, r *http.Request) {
	if err := rt.send(NewFilterEvent(sessionId, rt.country, view, r)); err != nil {
		log.Println("Error sending filter event: ", err)
	}
}
