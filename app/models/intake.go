package models

// IntakeForm adalah form data diri responden sebelum survei.
type IntakeForm struct {
	NIM      string `form:"nim" validate:"required,number,min=8,max=20"`
	Nama     string `form:"nama" validate:"required,min=3,max=100"`
	Prodi    string `form:"prodi" validate:"required"`
	Semester string `form:"semester" validate:"required,oneof=1 2 3 4 5 6 7 8"`
}

type NIMAvailability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
