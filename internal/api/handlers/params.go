package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PathParam возвращает path-параметр роута или пустую строку
func PathParam(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
