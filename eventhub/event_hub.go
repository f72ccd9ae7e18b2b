package eventhub

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/AsynkronIT/protoactor-go/actor"
	"lukechampine.com/frand"

	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
)

var ErrNotStarted = errors.New("event hub is not started")

// EventHub delivers wallet events to observers on a single actor, one event at
// a time and in trigger order.
type EventHub interface {
	Start(sysActor *actor.ActorSystem) error
	Stop() error
	Trig(ctx context.Context, name string, data interface{}) error
	Observe(ctx context.Context, evName string, evHandler EventHandler) (string, error) //return observation id
	UnObserve(ctx context.Context, obsID string, evName string) error
}

type eventHub struct {
	log       tplog.Logger
	sync      sync.RWMutex
	sysActor  *actor.ActorSystem
	evPID     *actor.PID
	evManager *eventManager
}

func NewEventHub(level tplogcmm.LogLevel, log tplog.Logger) EventHub {
	return &eventHub{
		log:       tplog.CreateModuleLogger(level, "EventHub", log),
		evManager: newEventManager(),
	}
}

func (hub *eventHub) Start(sysActor *actor.ActorSystem) error {
	if sysActor == nil {
		return errors.New("nil actor system")
	}

	hub.sync.Lock()
	defer hub.sync.Unlock()

	if hub.evPID != nil {
		return nil
	}
	hub.sysActor = sysActor
	hub.evPID = spawnEventActor(hub.log, sysActor, hub.evManager)

	return nil
}

// Trig queues the event for delivery. Unknown events are rejected here, a
// payload of the wrong type is dropped and logged by the actor.
func (hub *eventHub) Trig(ctx context.Context, name string, data interface{}) error {
	if _, err := hub.evManager.lookup(name); err != nil {
		return err
	}

	hub.sync.RLock()
	defer hub.sync.RUnlock()

	if hub.evPID == nil {
		return ErrNotStarted
	}
	hub.sysActor.Root.Send(hub.evPID, &eventMsg{ctx: ctx, name: name, data: data})

	return nil
}

func (hub *eventHub) Observe(ctx context.Context, evName string, evHandler EventHandler) (string, error) {
	if evHandler == nil {
		return "", errors.New("nil event handler")
	}
	obsID := hex.EncodeToString(frand.Bytes(10))

	return obsID, hub.evManager.addObserver(obsID, evName, evHandler)
}

func (hub *eventHub) UnObserve(ctx context.Context, obsID string, evName string) error {
	return hub.evManager.removeObserver(obsID, evName)
}

// Stop lets the actor drain queued events and waits for it to terminate.
func (hub *eventHub) Stop() error {
	hub.sync.Lock()
	defer hub.sync.Unlock()

	if hub.evPID == nil {
		return nil
	}
	err := hub.sysActor.Root.PoisonFuture(hub.evPID).Wait()
	hub.evPID = nil
	if err != nil {
		return fmt.Errorf("stop event actor: %w", err)
	}
	return nil
}
