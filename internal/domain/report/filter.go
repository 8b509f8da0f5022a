package report

import "strings"

// Filter filtro multi-selección sobre una dimensión.
// IncludeUnknown se activa cuando la lista traía el token de respaldo y agrega
// (OR) las ideas cuyo valor está ausente, en blanco o sin fila asociada.
type Filter struct {
	Values         []string
	IncludeUnknown bool
}

// ParseFilter recorta, descarta blancos y duplicados, y separa el token
// "desconocido" de la dimensión (sin distinguir mayúsculas).
func ParseFilter(d Dimension, raw []string) Filter {
	var f Filter
	sentinel := d.Fallback()
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		v := strings.TrimSpace(r)
		if v == "" {
			continue
		}
		if sentinel != "" && strings.EqualFold(v, sentinel) {
			f.IncludeUnknown = true
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		f.Values = append(f.Values, v)
	}
	return f
}

// Active false significa que la dimensión no se filtra.
func (f Filter) Active() bool {
	return f.IncludeUnknown || len(f.Values) > 0
}

// Matches evalúa el filtro sobre un valor opcional (coincidencia literal exacta).
func (f Filter) Matches(v *string) bool {
	if !f.Active() {
		return true
	}
	if f.IncludeUnknown && IsBlank(v) {
		return true
	}
	if v == nil {
		return false
	}
	for _, lit := range f.Values {
		if *v == lit {
			return true
		}
	}
	return false
}
