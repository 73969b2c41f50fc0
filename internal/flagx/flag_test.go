package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-a", ":3000", "-x", "1"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", ":3000"},
		},
		{
			name:         "equals form",
			args:         []string{"-o=http://localhost:8080", "-v"},
			allowedFlags: []string{"-o"},
			want:         []string{"-o=http://localhost:8080"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value",
			args:         []string{"-s"},
			allowedFlags: []string{"-s"},
			want:         []string{"-s"},
		},
		{
			name:         "next dash argument is not a value",
			args:         []string{"-c", "-config=alt.yaml"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "-config=alt.yaml"},
		},
		{
			name:         "order and repeats preserved",
			args:         []string{"-d", "one", "-a", ":1", "-d", "two"},
			allowedFlags: []string{"-d", "-a"},
			want:         []string{"-d", "one", "-a", ":1", "-d", "two"},
		},
		{
			name:         "empty",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"bin", "-c", "/etc/crmauth.yaml"}, want: "/etc/crmauth.yaml"},
		{name: "long", args: []string{"bin", "-config", "/etc/crmauth.json"}, want: "/etc/crmauth.json"},
		{name: "mixed with server flags", args: []string{"bin", "-a", ":9000", "-c=cfg.yaml"}, want: "cfg.yaml"},
		{name: "absent", args: []string{"bin", "-a", ":9000"}, want: ""},
		{name: "last wins", args: []string{"bin", "-c", "1.json", "-config", "2.json"}, want: "2.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, ConfigFileFlag())
		})
	}
}
