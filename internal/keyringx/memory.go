package keyringx

import "sync"

// Memory is an in-memory API implementation for tests and for platforms
// where no keyring daemon is available.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (k *Memory) Get(account string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[account]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (k *Memory) Set(account, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[account] = value
	return nil
}

func (k *Memory) Delete(account string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.m[account]; !ok {
		return ErrNotFound
	}
	delete(k.m, account)
	return nil
}
