// Package kvstore encrypts values on their way into a key/value medium.
package kvstore

import (
	"context"
	"fmt"

	"github.com/lightningstudio/watchbili/utils"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
	"github.com/zijiren233/stream"
)

const keyInfo = "watchbili kv v1"

// Encrypted seals every value with AES-GCM under a key derived from the
// master key. The entry name is authenticated with the value, so a blob
// moved to another name does not open.
type Encrypted struct {
	kv  bilibili.KV
	key []byte
}

var _ bilibili.KV = (*Encrypted)(nil)

func NewEncrypted(kv bilibili.KV, masterKey []byte) (*Encrypted, error) {
	key, err := utils.DeriveKey(masterKey, keyInfo)
	if err != nil {
		return nil, fmt.Errorf("derive kv key: %w", err)
	}
	return &Encrypted{kv: kv, key: key}, nil
}

// GetString reports undecryptable values as bilibili.ErrCorruptRecord.
func (e *Encrypted) GetString(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := e.kv.GetString(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := utils.DecryptoFromBase64(raw, e.key, stream.StringToBytes(key))
	if err != nil {
		return "", true, fmt.Errorf("%w: %s: %v", bilibili.ErrCorruptRecord, key, err)
	}
	return stream.BytesToString(plain), true, nil
}

func (e *Encrypted) PutString(ctx context.Context, key, value string) error {
	sealed, err := utils.CryptoToBase64(stream.StringToBytes(value), e.key, stream.StringToBytes(key))
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return e.kv.PutString(ctx, key, sealed)
}
