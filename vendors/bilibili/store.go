package bilibili

import (
	"context"
	"errors"
	"fmt"
	"sync"

	json "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"github.com/zijiren233/stream"
)

const AccountKey = "account_json"

// KV is the durable string medium the account blob lives in.
// GetString reports ok=false when the key was never written.
type KV interface {
	GetString(ctx context.Context, key string) (value string, ok bool, err error)
	PutString(ctx context.Context, key, value string) error
}

type AccountStore interface {
	// Read returns nil without error only if nothing was ever persisted.
	Read(ctx context.Context) (*Account, error)
	Write(ctx context.Context, account *Account) error
	// Update runs fn on the record freshly decoded from the medium, or a zero
	// Account when none is stored, and persists the result. If fn returns an
	// error nothing is written.
	Update(ctx context.Context, fn func(account *Account) error) error
}

var _ AccountStore = (*Store)(nil)

type Store struct {
	kv  KV
	key string
	mu  sync.Mutex
}

type StoreConfig func(*Store)

func WithStoreKey(key string) StoreConfig {
	return func(s *Store) {
		s.key = key
	}
}

func NewStore(kv KV, conf ...StoreConfig) *Store {
	s := &Store{
		kv:  kv,
		key: AccountKey,
	}
	for _, c := range conf {
		c(s)
	}
	return s
}

func (s *Store) Read(ctx context.Context) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) Write(ctx context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, account)
}

func (s *Store) Update(ctx context.Context, fn func(account *Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		current = &Account{}
	}
	if err := fn(current); err != nil {
		return err
	}
	return s.save(ctx, current)
}

func (s *Store) load(ctx context.Context) (*Account, error) {
	raw, ok, err := s.kv.GetString(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrCorruptRecord) {
			log.Warnf("bilibili: account record unreadable, starting fresh: %v", err)
			return &Account{}, nil
		}
		return nil, fmt.Errorf("read account: %w", err)
	}
	if !ok {
		return nil, nil
	}
	account := &Account{}
	if err := json.Unmarshal(stream.StringToBytes(raw), account); err != nil {
		log.Warnf("bilibili: account record undecodable, starting fresh: %v", err)
		return &Account{}, nil
	}
	return account, nil
}

func (s *Store) save(ctx context.Context, account *Account) error {
	if account == nil {
		account = &Account{}
	}
	b, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	if err := s.kv.PutString(ctx, s.key, stream.BytesToString(b)); err != nil {
		return fmt.Errorf("write account: %w", err)
	}
	return nil
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) GetString(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) PutString(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
