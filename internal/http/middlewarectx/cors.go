// Package middlewarectx содержит middleware HTTP-сервера: разрешающий CORS
// и проверку сессионного токена с прокладыванием имени пользователя в
// контекст запроса.
package middlewarectx

import "net/http"

// CORS выставляет разрешающие CORS-заголовки на каждый ответ; preflight
// (OPTIONS) завершается сразу, статусом 200 без тела.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
