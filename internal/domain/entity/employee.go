package entity

import "strings"

// Límites de columnas de employees.
const (
	MaxEmployeeNamePartLen = 100
	MaxEmployeeEmailLen    = 200
	MaxDepartmentLen       = 200
	MaxEmployeeStatusLen   = 5
)

// EmployeeStatusActive estatus por defecto de un empleado.
const EmployeeStatusActive = "A"

// Employee empleado identificado por su código (estable, distinto de User.ID).
// Se carga por CSV y se completa de forma oportunista sin sobrescribir datos.
type Employee struct {
	Code       string
	FirstName  string
	LastName1  string
	LastName2  string
	Email      string
	Department string
	Status     string
}

// FullName une las partes no vacías del nombre con un espacio.
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, e.LastName1, e.LastName2} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}

// SplitFullName separa "Nombre Apellido1 Apellido2..." en sus tres partes.
// Todo lo que sigue al segundo token se considera segundo apellido.
func SplitFullName(full string) (first, last1, last2 string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], parts[1], strings.Join(parts[2:], " ")
	}
}

// FillBlanks completa los campos vacíos de e con los de other y devuelve true si cambió algo.
// Nunca sobrescribe un valor existente.
func (e *Employee) FillBlanks(other Employee) bool {
	changed := false
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" && strings.TrimSpace(src) != "" {
			*dst = strings.TrimSpace(src)
			changed = true
		}
	}
	fill(&e.FirstName, other.FirstName)
	fill(&e.LastName1, other.LastName1)
	fill(&e.LastName2, other.LastName2)
	fill(&e.Email, other.Email)
	fill(&e.Department, other.Department)
	return changed
}
