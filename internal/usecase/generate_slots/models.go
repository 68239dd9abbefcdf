package generate_slots

// Request запрос на генерацию слотов
type Request struct {
	// TutorID если указан, генерация выполняется только для этого репетитора
	TutorID *int64
}

// TutorResult результат генерации для одного репетитора
type TutorResult struct {
	TutorID      int64 `json:"providerId"`
	SlotsCreated int   `json:"slotsCreated"`
	RulesSkipped int   `json:"rulesSkipped"`
}

// Response сводка по генерации слотов
type Response struct {
	Tutors []TutorResult `json:"providers"`
}
