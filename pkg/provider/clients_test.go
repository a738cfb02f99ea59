// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AddClientSeedsFromFirst(t *testing.T) {
	s := NewEditorState(nil, "google-workspaces")
	first := &s.Clients[0]
	first.ClientID = "web-client"
	first.ClientSecret = "web-secret"
	first.ClientType = "web"
	first.Scopes = []string{"openid", "email"}
	first.ForcePKCE = true
	first.AdditionalConfig = first.AdditionalConfig.Set("hd", "example.com")
	first.AdditionalConfig = first.AdditionalConfig.Set("prompt", "consent")

	AddClient(s)

	require.Len(t, s.Clients, 2)
	added := s.Clients[1]
	assert.NotEmpty(t, added.EditKey)
	assert.NotEqual(t, s.Clients[0].EditKey, added.EditKey)

	// shared defaults carry over
	assert.Equal(t, []string{"openid", "email"}, added.Scopes)
	assert.True(t, added.ForcePKCE)

	// credentials never duplicate across clients
	assert.Equal(t, "", added.ClientID)
	assert.Equal(t, "", added.ClientSecret)
	assert.Equal(t, "", added.ClientType)

	// registry declared custom fields come back blank, free form rows
	// keep their values
	val, ok := added.AdditionalConfig.Get("hd")
	require.True(t, ok)
	assert.Equal(t, "", val)
	val, ok = added.AdditionalConfig.Get("prompt")
	require.True(t, ok)
	assert.Equal(t, "consent", val)
}

func Test_AddClientScopesDetached(t *testing.T) {
	s := NewEditorState(nil, "google")
	s.Clients[0].Scopes = []string{"openid"}

	AddClient(s)
	s.Clients[1].Scopes[0] = "changed"

	assert.Equal(t, "openid", s.Clients[0].Scopes[0])
}

func Test_RemoveClient(t *testing.T) {
	s := NewEditorState(nil, "google")
	AddClient(s)
	AddClient(s)
	require.Len(t, s.Clients, 3)
	second := s.Clients[1].EditKey

	RemoveClient(s, 1)
	require.Len(t, s.Clients, 2)
	for _, c := range s.Clients {
		assert.NotEqual(t, second, c.EditKey)
	}

	// out of range indices are ignored
	RemoveClient(s, -1)
	RemoveClient(s, 5)
	assert.Len(t, s.Clients, 2)
}
