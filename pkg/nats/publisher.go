package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"doc-manager-be/pkg/events"

	"github.com/nats-io/nats.go"
)

const eventSubject = "doc-manager.events"

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.BaseEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(eventSubject, payload)
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
