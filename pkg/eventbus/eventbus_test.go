package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestPublishNotifieTousLesAbonnes(t *testing.T) {
	bus := New(zap.NewNop())

	received := make(chan Event, 2)
	handler := func(_ context.Context, ev Event) error {
		received <- ev
		return nil
	}
	bus.Subscribe("entite.modifiee", handler)
	bus.Subscribe("entite.modifiee", handler)

	bus.Publish(context.Background(), testEvent{name: "entite.modifiee"})

	for i := 0; i < 2; i++ {
		select {
		case ev := <-received:
			require.Equal(t, "entite.modifiee", ev.Name())
		case <-time.After(2 * time.Second):
			t.Fatal("listener jamais notifié")
		}
	}
}

func TestPublishIgnoreLesAutresEvenements(t *testing.T) {
	bus := New(zap.NewNop())

	var calls atomic.Int32
	bus.Subscribe("entite.modifiee", func(_ context.Context, _ Event) error {
		calls.Add(1)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "autre.evenement"})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestPublishAbsorbeLesErreursDesListeners(t *testing.T) {
	bus := New(zap.NewNop())

	done := make(chan struct{})
	bus.Subscribe("entite.modifiee", func(_ context.Context, _ Event) error {
		close(done)
		return errors.New("listener en panne")
	})

	// Publish ne renvoie rien : l'échec d'un listener ne doit
	// jamais atteindre l'appelant.
	bus.Publish(context.Background(), testEvent{name: "entite.modifiee"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener jamais notifié")
	}
}
