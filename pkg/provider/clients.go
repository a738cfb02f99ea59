// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import "github.com/google/uuid"

// AddClient appends a new client entry to the state, seeded from the
// first existing client so that shared defaults do not have to be
// re-entered per platform: scope list, additionalConfig row shape and
// the forcePKCE setting are carried over. Credentials and registry
// declared custom field values are always reset to blank, key
// material must never be silently duplicated across clients.
func AddClient(s *EditorState) {
	kind := s.Kind()
	draft := newClientDraft(kind)

	if len(s.Clients) > 0 {
		first := s.Clients[0]
		draft.Scopes = append([]string{}, first.Scopes...)
		draft.ForcePKCE = first.ForcePKCE

		custom := map[string]bool{}
		for _, f := range kind.ClientFields() {
			custom[f.ID] = true
		}
		draft.AdditionalConfig = nil
		for _, p := range first.AdditionalConfig {
			row := DraftPair{Key: p.Key}
			if p.Value != nil {
				v := *p.Value
				if custom[p.Key] {
					v = ""
				}
				row.Value = &v
			}
			draft.AdditionalConfig = append(draft.AdditionalConfig, row)
		}
	}

	draft.EditKey = uuid.NewString()
	s.Clients = append(s.Clients, draft)
}

// RemoveClient removes the client at the given index. Out of range
// indices are ignored. Keeping at least one client around is a
// validation invariant, not enforced here, the UI is expected to not
// offer removal of the last remaining client.
func RemoveClient(s *EditorState, index int) {
	if index < 0 || index >= len(s.Clients) {
		return
	}
	s.Clients = append(s.Clients[:index], s.Clients[index+1:]...)
}
