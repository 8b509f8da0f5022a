package entity

// Role rol global; Name es único. Se crea bajo demanda y nunca se elimina.
type Role struct {
	ID   string
	Name string
}
