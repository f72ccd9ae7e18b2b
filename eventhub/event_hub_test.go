package eventhub

import (
	"context"
	"testing"
	"time"

	"github.com/AsynkronIT/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tplog "github.com/TopiaNetwork/tpwallet/log"
	tplogcmm "github.com/TopiaNetwork/tpwallet/log/common"
)

func newTestEventHub(t *testing.T) EventHub {
	testLog, err := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.JSONFormat, tplog.DiscardOutput, "")
	require.NoError(t, err)

	evHub := NewEventHub(tplogcmm.InfoLevel, testLog)
	require.NoError(t, evHub.Start(actor.NewActorSystem()))
	t.Cleanup(func() { assert.NoError(t, evHub.Stop()) })

	return evHub
}

func TestEventHub_Trig(t *testing.T) {
	evHub := newTestEventHub(t)

	received := make(chan *LockStateEvent, 4)
	obsID, err := evHub.Observe(context.Background(), EventName_KeyringUnlocked, func(ctx context.Context, data interface{}) error {
		received <- data.(*LockStateEvent)
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, obsID)

	require.NoError(t, evHub.Trig(context.Background(), EventName_KeyringUnlocked, &LockStateEvent{IsUnlocked: true, KeyringCount: 2}))

	select {
	case ev := <-received:
		assert.True(t, ev.IsUnlocked)
		assert.Equal(t, 2, ev.KeyringCount)
	case <-time.After(5 * time.Second):
		t.Fatal("unlock event not delivered")
	}

	require.NoError(t, evHub.UnObserve(context.Background(), obsID, EventName_KeyringUnlocked))
	assert.Error(t, evHub.UnObserve(context.Background(), obsID, EventName_KeyringUnlocked))

	require.NoError(t, evHub.Trig(context.Background(), EventName_KeyringUnlocked, &LockStateEvent{IsUnlocked: true}))
	select {
	case <-received:
		t.Fatal("event delivered after UnObserve")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEventHub_InvalidUse(t *testing.T) {
	evHub := NewEventHub(tplogcmm.InfoLevel, nil)
	assert.Equal(t, ErrNotStarted, evHub.Trig(context.Background(), EventName_KeyringLocked, &LockStateEvent{}))

	_, err := evHub.Observe(context.Background(), "TxReceived", func(ctx context.Context, data interface{}) error { return nil })
	assert.Error(t, err)

	assert.NoError(t, evHub.Stop())
}

func TestEventHub_WrongPayloadIgnored(t *testing.T) {
	evHub := newTestEventHub(t)

	received := make(chan interface{}, 2)
	_, err := evHub.Observe(context.Background(), EventName_KeyringLocked, func(ctx context.Context, data interface{}) error {
		received <- data
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, evHub.Trig(context.Background(), EventName_KeyringLocked, "not a lock state"))
	require.NoError(t, evHub.Trig(context.Background(), EventName_KeyringLocked, &LockStateEvent{}))

	select {
	case data := <-received:
		_, ok := data.(*LockStateEvent)
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("lock event not delivered")
	}
}

func TestEventHub_AccountsChanged(t *testing.T) {
	evHub := newTestEventHub(t)

	assert.Error(t, evHub.Trig(context.Background(), "TxReceived", &AccountsChangedEvent{}))
	_, err := evHub.Observe(context.Background(), EventName_AccountsChanged, nil)
	assert.Error(t, err)

	received := make(chan []string, 1)
	_, err = evHub.Observe(context.Background(), EventName_AccountsChanged, func(ctx context.Context, data interface{}) error {
		received <- data.(*AccountsChangedEvent).Accounts
		return nil
	})
	require.NoError(t, err)

	accounts := []string{"0x627306090abab3a6e1400e9345bc60c78a8bef57"}
	require.NoError(t, evHub.Trig(context.Background(), EventName_AccountsChanged, &AccountsChangedEvent{Accounts: accounts}))

	select {
	case got := <-received:
		assert.Equal(t, accounts, got)
	case <-time.After(5 * time.Second):
		t.Fatal("accounts changed event not delivered")
	}
}

func TestEventHub_StopDrainsQueue(t *testing.T) {
	evHub := newTestEventHub(t)

	received := make(chan struct{}, 8)
	_, err := evHub.Observe(context.Background(), EventName_AccountsChanged, func(ctx context.Context, data interface{}) error {
		received <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, evHub.Trig(context.Background(), EventName_AccountsChanged, &AccountsChangedEvent{}))
	}
	require.NoError(t, evHub.Stop())
	assert.Len(t, received, 5)

	assert.Equal(t, ErrNotStarted, evHub.Trig(context.Background(), EventName_AccountsChanged, &AccountsChangedEvent{}))
	assert.NoError(t, evHub.Stop())
}
