// Package response содержит типы унифицированных JSON-ответов в формате,
// который ожидает существующий фронтенд площадки: исход операции передаётся
// полем error в теле, а не HTTP-статусом.
package response

// ErrorResponse — стандартное тело ошибки легаси-поверхности API.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid credentials"`
}

// Err возвращает ErrorResponse с переданным сообщением.
func Err(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// OK — минимальное тело успешного ответа.
type OK struct {
	Success bool `json:"success"`
}

// Success возвращает тело {"success":true}.
func Success() OK {
	return OK{Success: true}
}
