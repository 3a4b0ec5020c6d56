package model

// Request описывает один исходящий вызов API. Живет только на время вызова.
type Request struct {
	Path    string
	Method  string
	Body    any
	Headers map[string]string

	// Auth — прикладывать ли access токен к запросу
	Auth bool

	// SkipRefresh запрещает обновление сессии даже при ответе 401.
	// Нужен вызовам, которые сами проверяют пригодность сессии и хотят
	// быстрый однозначный ответ без рекурсии.
	SkipRefresh bool
}

// Result : разобранный терминальный ответ сервера
type Result struct {
	Status int

	// Data — результат работы декодера: структура для JSON, текст для остального
	Data any

	// Raw — исходное тело ответа, для десериализации в конкретные DTO
	Raw []byte
}
