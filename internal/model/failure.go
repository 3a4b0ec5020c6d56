package model

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError : нормализованная ошибка, которую получают вызывающие экраны.
// Создается диспетчером для каждого не-2xx ответа после исчерпания политики
// повтора. Fields содержит ошибки валидации по полям формы, если сервер
// их вернул.
type APIError struct {
	Message string
	Status  int
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (статус %d)", e.Message, e.Status)
	}
	return e.Message
}

// IsUnauthorized сообщает, вызвана ли ошибка статусом 401.
// Именно это условие — единственное, при котором экраны деградируют
// до публичного варианта ресурса.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
