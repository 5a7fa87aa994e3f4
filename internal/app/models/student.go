package models

// StudentRecord is one accepted roster row together with its derived login
// credentials. JSON keys are the ones the generated script reads. No is 0
// when the roster cell is not a positive integer.
type StudentRecord struct {
	No       int    `json:"no"`
	Name     string `json:"nama"`
	Class    string `json:"kelas"`
	NISN     string `json:"nisn"`
	Password string `json:"password"`
	Email    string `json:"email"`
}
