package deeplink_test

import (
	"net/url"
	"testing"

	"warehouse/internal/adapters/out/deeplink"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Notify(t *testing.T) {
	n := deeplink.NewNotifier("+54 9 3465 40-0000")

	tests := []struct {
		name  string
		phone string
		path  string
	}{
		{name: "own phone", phone: "+54 (9) 3462 123456", path: "/5493462123456"},
		{name: "support line", phone: "", path: "/5493465400000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handoff, err := n.Notify(t.Context(), ports.Notification{
				Message: "*FIRMAT* - Preparado\nTotal: 3 bultos",
				Phone:   tt.phone,
			})
			require.NoError(t, err)

			link, err := url.Parse(handoff.Link)
			require.NoError(t, err)
			assert.Equal(t, "wa.me", link.Host)
			assert.Equal(t, tt.path, link.Path)
			assert.Equal(t, "*FIRMAT* - Preparado\nTotal: 3 bultos", link.Query().Get("text"))
		})
	}
}

func TestNotifier_NoSupportPhone(t *testing.T) {
	handoff, err := deeplink.NewNotifier("").Notify(t.Context(), ports.Notification{Message: "hola"})

	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/?text=hola", handoff.Link)
}
