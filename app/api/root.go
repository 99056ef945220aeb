package api

import "net/http"

type HelloResponse struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// HandleRoot answers the liveness probe.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	OKResponse(w, HelloResponse{
		Message:  "Hello, world!",
		Category: "default",
	})
}
