package mux

import (
	"net/http"

	"cardrush-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests: the read-only status API and the websocket
// gateway onto the game protocol
type Mux struct {
	*gmux.Router
	version string
	hub     *room.Hub
}

// NewMux returns a new HTTP mux for the given hub
func NewMux(version string, hub *room.Hub) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		hub:     hub,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/room").Handler(this.getRooms())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
