package wallet

type KeyringState struct {
	Type     string
	Accounts []string
}

// State is a snapshot of the controller safe to hand out to callers.
type State struct {
	IsUnlocked bool
	Keyrings   []KeyringState
	// VaultDiverged is set while the last mutation is not persisted.
	VaultDiverged bool
}

func (s State) AccountCount() int {
	n := 0
	for _, kr := range s.Keyrings {
		n += len(kr.Accounts)
	}
	return n
}
