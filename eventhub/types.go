package eventhub

const (
	EventName_KeyringLocked   = "KeyringLocked"
	EventName_KeyringUnlocked = "KeyringUnlocked"
	EventName_AccountsChanged = "AccountsChanged"
)

// LockStateEvent is the payload of EventName_KeyringLocked and EventName_KeyringUnlocked.
type LockStateEvent struct {
	IsUnlocked   bool
	KeyringCount int
}

// AccountsChangedEvent carries every account held once an account or keyring
// was added or removed.
type AccountsChangedEvent struct {
	Accounts []string
}
