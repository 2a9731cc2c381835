// Package keyring keeps the master key that encrypts the stored account.
// The OS keyring is preferred; a 0600 key file is the fallback for headless
// hosts without a secret service.
package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
)

const keySize = 32

var ErrNoKey = errors.New("keyring: no key stored")

type KeyStore interface {
	Name() string
	// GetKey returns ErrNoKey when nothing was stored yet.
	GetKey() ([]byte, error)
	SetKey(key []byte) error
}

var (
	keyringSet = keyring.Set
	keyringGet = keyring.Get
	randRead   = rand.Read
)

type OSKeyring struct {
	Service string
	User    string
}

func NewOSKeyring(service string) *OSKeyring {
	return &OSKeyring{
		Service: service,
		User:    "master",
	}
}

func (k *OSKeyring) Name() string {
	return "os keyring"
}

func (k *OSKeyring) GetKey() ([]byte, error) {
	s, err := keyringGet(k.Service, k.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoKey
		}
		return nil, err
	}
	return decodeKey(s)
}

func (k *OSKeyring) SetKey(key []byte) error {
	return keyringSet(k.Service, k.User, hex.EncodeToString(key))
}

func decodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid key length: expected %d, got %d", keySize, len(key))
	}
	return key, nil
}

// MasterKey returns the first key found in stores. Only when no store holds
// a key is a new one generated and saved to the first store that accepts it.
func MasterKey(stores ...KeyStore) ([]byte, error) {
	for _, s := range stores {
		key, err := s.GetKey()
		switch {
		case err == nil:
			return key, nil
		case errors.Is(err, ErrNoKey):
		default:
			log.Warnf("keyring: %s unavailable: %v", s.Name(), err)
		}
	}
	key := make([]byte, keySize)
	if _, err := randRead(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	for _, s := range stores {
		if err := s.SetKey(key); err != nil {
			log.Warnf("keyring: save key to %s failed: %v", s.Name(), err)
			continue
		}
		log.Infof("keyring: new master key saved to %s", s.Name())
		return key, nil
	}
	return nil, errors.New("keyring: no store accepted the master key")
}
