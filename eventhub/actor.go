package eventhub

import (
	"github.com/AsynkronIT/protoactor-go/actor"

	tplog "github.com/TopiaNetwork/tpwallet/log"
)

type eventActor struct {
	log       tplog.Logger
	evManager *eventManager
}

func spawnEventActor(log tplog.Logger, sysActor *actor.ActorSystem, evManager *eventManager) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return &eventActor{
			log:       log,
			evManager: evManager,
		}
	})

	return sysActor.Root.Spawn(props)
}

func (ea *eventActor) Receive(actorCtx actor.Context) {
	switch msg := actorCtx.Message().(type) {
	case *actor.Started:
		ea.log.Debugf("event actor %s started", actorCtx.Self().Id)
	case *actor.Stopped:
		ea.log.Debugf("event actor %s stopped", actorCtx.Self().Id)
	case *eventMsg:
		if err := ea.evManager.dispatch(ea.log, msg); err != nil {
			ea.log.Errorf("dispatch event %s err: %v", msg.name, err)
		}
	}
}
