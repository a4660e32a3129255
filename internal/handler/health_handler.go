package handlers

import (
	"net/http"
)

// HealthHandler - liveness для хостинга: 200, пока процесс жив,
// независимо от состояния БД и планировщика
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
