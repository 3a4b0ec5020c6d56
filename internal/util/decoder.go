package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DecodeBody разбирает тело ответа в зависимости от Content-Type.
// JSON декодируется в структуру; все остальное возвращается как текст,
// чтобы тела ошибок от не-JSON эндпоинтов оставались читаемыми, а не
// превращались во вторичную ошибку парсинга. Тело с некорректным JSON
// тоже возвращается как текст.
func DecodeBody(response *http.Response) (any, []byte, error) {
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка чтения тела ответа: %w", err)
	}

	contentType := response.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") && len(raw) > 0 {
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return string(raw), raw, nil
		}
		return data, raw, nil
	}

	return string(raw), raw, nil
}
