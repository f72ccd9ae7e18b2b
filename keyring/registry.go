package keyring

import "fmt"

type Factory struct {
	Type string
	New  func() Keyring
}

// Registry maps a keyring type name to its constructor. It is immutable once built.
type Registry struct {
	factories map[string]func() Keyring
	types     []string
}

func NewRegistry(factories ...Factory) (*Registry, error) {
	r := &Registry{
		factories: make(map[string]func() Keyring, len(factories)),
	}
	for _, f := range factories {
		if f.Type == "" || f.New == nil {
			return nil, fmt.Errorf("invalid keyring factory %q", f.Type)
		}
		if _, ok := r.factories[f.Type]; ok {
			return nil, fmt.Errorf("duplicated keyring type %q", f.Type)
		}
		r.factories[f.Type] = f.New
		r.types = append(r.types, f.Type)
	}

	return r, nil
}

func (r *Registry) Lookup(keyringType string) (func() Keyring, error) {
	newFn, ok := r.factories[keyringType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyringType, keyringType)
	}
	return newFn, nil
}

// Types lists registered type names in registration order.
func (r *Registry) Types() []string {
	ret := make([]string, len(r.types))
	copy(ret, r.types)
	return ret
}
