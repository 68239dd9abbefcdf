package expire_requests

// Response сводка по одному проходу уборки
type Response struct {
	Found   int `json:"found"`   // Найдено запросов на границе часа
	Expired int `json:"expired"` // Успешно переведено в expired
	Errors  int `json:"errors"`  // Запросов с ошибкой перевода
}
