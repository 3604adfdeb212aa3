package mux

import "net/http"

func (m *Mux) getRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.hub.Rooms().Infos())
	}
}
