package eventhub

import (
	"fmt"

	tplog "github.com/TopiaNetwork/tpwallet/log"
)

// eventManager holds the fixed set of wallet events. It is filled once by
// newEventManager and only the observers change afterwards.
type eventManager struct {
	events map[string]*event
}

func newEventManager() *eventManager {
	evs := []*event{
		newEvent(EventName_KeyringLocked, &LockStateEvent{}),
		newEvent(EventName_KeyringUnlocked, &LockStateEvent{}),
		newEvent(EventName_AccountsChanged, &AccountsChangedEvent{}),
	}

	evm := &eventManager{events: make(map[string]*event, len(evs))}
	for _, ev := range evs {
		evm.events[ev.name] = ev
	}
	return evm
}

func (evm *eventManager) lookup(name string) (*event, error) {
	if ev, ok := evm.events[name]; ok {
		return ev, nil
	}
	return nil, fmt.Errorf("unsupported event %s", name)
}

func (evm *eventManager) addObserver(obsID string, evName string, evHandler EventHandler) error {
	ev, err := evm.lookup(evName)
	if err != nil {
		return err
	}
	return ev.addObserver(obsID, evHandler)
}

func (evm *eventManager) removeObserver(obsID string, evName string) error {
	ev, err := evm.lookup(evName)
	if err != nil {
		return err
	}
	return ev.removeObserver(obsID)
}

func (evm *eventManager) dispatch(log tplog.Logger, msg *eventMsg) error {
	ev, err := evm.lookup(msg.name)
	if err != nil {
		return err
	}
	return ev.process(msg.ctx, log, msg.data)
}
