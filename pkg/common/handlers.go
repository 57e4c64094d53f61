package common

import (
	"log"
	"net/http"

	"github.com/bytedance/sonic"
)

// JsonHandler writes the value returned by fn as JSON. An error becomes a
// 500 with the error text.
func JsonHandler(fn func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fn(r)
		if err != nil {
			log.Printf("Error handling request %s: %v", r.URL.Path, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := sonic.ConfigDefault.NewEncoder(w).Encode(v); err != nil {
			log.Printf("Error encoding response %s: %v", r.URL.Path, err)
		}
	}
}
