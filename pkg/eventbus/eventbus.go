package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event représente n'importe quel événement du système.
type Event interface {
	Name() string
}

// Listener est un abonné à un type d'événement.
type Listener func(ctx context.Context, event Event) error

// Bus est la file d'événements in-process.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

// Subscribe abonne un listener à un nom d'événement.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish notifie tous les abonnés. Chaque listener a une minute,
// ses erreurs sont loggées, jamais propagées à l'appelant.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		go func(l Listener) {
			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("Erreur dans un listener d'événement",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}
