package models

// Question milik server. ID nol berarti soal belum dibuat.
type Question struct {
	ID       int    `json:"id,omitempty"`
	Code     string `json:"code"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// QuestionInput adalah body POST/PUT /api/questions.
type QuestionInput struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Text     string `json:"text"`
}
