// Package handlers is the view shell: per-entity list/detail/edit
// endpoints composing the gateway, the preference store and the
// specialized search/invoice computations. Responses are JSON; the
// presentation layer lives elsewhere.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
)

// remoteFail logs a gateway failure and surfaces a single user-visible
// message, preferring the server's own message when one came back.
// Every async path through a handler ends here or in a success write;
// nothing is left in a loading state.
func remoteFail(w http.ResponseWriter, err error, code, fallback string) {
	log.Printf("%s: %v", code, err)
	status := http.StatusBadGateway
	var se *api.StatusError
	if errors.As(err, &se) {
		status = se.Code
	}
	httpx.JSONError(w, status, code, map[string]string{"message": api.UserMessage(err, fallback)})
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return "", false
	}
	return id, true
}
