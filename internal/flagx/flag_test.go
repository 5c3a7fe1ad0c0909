package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	t.Parallel()

	allowed := []string{"-a", "-ttl"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"space-separated value kept", []string{"-a", ":8080"}, []string{"-a", ":8080"}},
		{"equals form kept", []string{"-a=:8080"}, []string{"-a=:8080"}},
		{"foreign flags dropped", []string{"-x", "1", "-a", ":8080", "-y=2"}, []string{"-a", ":8080"}},
		{"flag followed by flag keeps only the allowed one", []string{"-a", "-ttl", "2h"}, []string{"-a", "-ttl", "2h"}},
		{"negative value via equals", []string{"-nbf=-10s", "-ttl=2h"}, []string{"-ttl=2h"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FilterArgs(tt.args, allowed))
		})
	}
}
