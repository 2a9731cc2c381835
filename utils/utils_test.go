package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/lightningstudio/watchbili/utils"
)

type yamlConf struct {
	Name  string `yaml:"name"  hc:"display name"`
	Count int    `yaml:"count"`
}

func TestYaml(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "nested", "conf.yaml")
	if utils.Exists(file) {
		t.Fatal("file exists before write")
	}
	if err := utils.WriteYaml(file, &yamlConf{Name: "a", Count: 2}); err != nil {
		t.Fatal(err)
	}
	if !utils.Exists(file) {
		t.Fatal("file missing after write")
	}
	var got yamlConf
	if err := utils.ReadYaml(file, &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "a" || got.Count != 2 {
		t.Errorf("ReadYaml() = %+v", got)
	}
}

func TestMask(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "****"},
		{"0123456789abcdef", "0123****cdef"},
	}
	for _, tt := range tests {
		if got := utils.Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
