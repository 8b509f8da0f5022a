package ports

import "context"

// DirectoryAttributes datos del empleado que devuelve el directorio corporativo.
// Los valores pueden venir vacíos; la reconciliación los guarda como ausentes.
type DirectoryAttributes struct {
	EmployeeCode string
	FullName     string
}

// DirectoryGateway define el puerto de salida hacia el servicio de directorio (AD).
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type DirectoryGateway interface {
	// Authenticate valida credenciales. false sin error = credenciales inválidas;
	// cualquier fallo de red, timeout o respuesta ilegible se devuelve envuelto en
	// domain.ErrDirectoryUnavailable.
	Authenticate(ctx context.Context, userName, password string) (bool, error)

	// FetchAttributes obtiene código y nombre del usuario. (nil, nil) = no encontrado.
	FetchAttributes(ctx context.Context, userName string) (*DirectoryAttributes, error)
}
