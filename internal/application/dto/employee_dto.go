package dto

// EmployeeLookup datos de contacto de un empleado.
type EmployeeLookup struct {
	CodigoEmpleado string  `json:"codigoEmpleado"`
	NombreCompleto *string `json:"nombreCompleto"`
	Email          *string `json:"email"`
	Departamento   *string `json:"departamento"`
}
