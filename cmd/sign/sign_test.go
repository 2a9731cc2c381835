package sign_test

import (
	"testing"

	"github.com/lightningstudio/watchbili/cmd/sign"
)

func TestParseParams(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", want: map[string]string{}},
		{name: "pairs", args: []string{"a=1", "b=x=y", "c="}, want: map[string]string{"a": "1", "b": "x=y", "c": ""}},
		{name: "later wins", args: []string{"a=1", "a=2"}, want: map[string]string{"a": "2"}},
		{name: "no equals", args: []string{"a"}, wantErr: true},
		{name: "empty key", args: []string{"=1"}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := sign.ParseParams(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseParams() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()
	got := sign.Encode(map[string]string{"b": "2", "a": "x y"})
	if got != "a=x+y&b=2" {
		t.Errorf("Encode() = %s", got)
	}
}
