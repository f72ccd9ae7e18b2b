package eventhub

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	tplog "github.com/TopiaNetwork/tpwallet/log"
)

type EventHandler func(ctx context.Context, data interface{}) error

type eventMsg struct {
	ctx  context.Context
	name string
	data interface{}
}

type event struct {
	name      string
	dataType  reflect.Type
	sync      sync.RWMutex
	observers map[string]EventHandler //observation id -> EventHandler
}

func newEvent(name string, sample interface{}) *event {
	return &event{
		name:      name,
		dataType:  reflect.TypeOf(sample),
		observers: make(map[string]EventHandler),
	}
}

func (ev *event) addObserver(obsID string, evHandler EventHandler) error {
	ev.sync.Lock()
	defer ev.sync.Unlock()

	if _, ok := ev.observers[obsID]; ok {
		return fmt.Errorf("duplicated observation id %s of event %s", obsID, ev.name)
	}
	ev.observers[obsID] = evHandler

	return nil
}

func (ev *event) removeObserver(obsID string) error {
	ev.sync.Lock()
	defer ev.sync.Unlock()

	if _, ok := ev.observers[obsID]; !ok {
		return fmt.Errorf("unknown observation id %s of event %s", obsID, ev.name)
	}
	delete(ev.observers, obsID)

	return nil
}

// process runs the handlers synchronously on the event actor, so observers
// see events in the order they were triggered. A failing handler does not stop
// the others.
func (ev *event) process(ctx context.Context, log tplog.Logger, data interface{}) error {
	if reflect.TypeOf(data) != ev.dataType {
		return fmt.Errorf("invalid data of event %s: expected %s, actual %T", ev.name, ev.dataType, data)
	}

	ev.sync.RLock()
	handlers := make([]EventHandler, 0, len(ev.observers))
	for _, evHandler := range ev.observers {
		handlers = append(handlers, evHandler)
	}
	ev.sync.RUnlock()

	for _, evHandler := range handlers {
		if err := evHandler(ctx, data); err != nil {
			log.With("event", ev.name).Warnf("handler err: %v", err)
		}
	}

	return nil
}
