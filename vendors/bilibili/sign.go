package bilibili

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/zijiren233/stream"
	"golang.org/x/exp/maps"
)

// SignApp applies the legacy app-key signature. The secret only ever takes
// part in the digest; it is never added as a parameter.
func SignApp(params map[string]string, appKey, appSec string) map[string]string {
	signed := maps.Clone(params)
	if signed == nil {
		signed = make(map[string]string, 2)
	}
	if _, ok := signed["appkey"]; !ok {
		signed["appkey"] = appKey
	}
	delete(signed, "sign")

	var sb strings.Builder
	for i, k := range sortedKeys(signed) {
		if i != 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(signed[k])
	}
	sb.WriteString(appSec)

	signed["sign"] = md5Hex(sb.String())
	return signed
}

func md5Hex(s string) string {
	hash := md5.Sum(stream.StringToBytes(s))
	return hex.EncodeToString(hash[:])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
