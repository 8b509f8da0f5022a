// Package employeecsv lee el maestro de empleados exportado como CSV.
//
// Columnas por posición: código, nombre, apellido1, apellido2, correo,
// departamento (opcional) y estatus (opcional, "A" por defecto). La primera
// fila es cabecera; su contenido decide el delimitador (';' si aparece, si no ',').
package employeecsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Ideas-api/internal/domain/entity"
	"github.com/jhoicas/Ideas-api/internal/domain/identity"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// MinColumns columnas mínimas de una fila válida.
const MinColumns = 5

// Result filas aceptadas y motivos de las omitidas (línea → motivo).
type Result struct {
	Employees []entity.Employee
	Skipped   map[int]string
}

// Decoder envuelve r según el juego de caracteres: utf-8 (o vacío),
// iso-8859-1 / latin1 o windows-1252.
func Decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "latin1", "latin-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("juego de caracteres no soportado: %q", charset)
	}
}

// Read parsea el CSV completo. Códigos vacíos o repetidos se omiten.
func Read(r io.Reader, charset string) (*Result, error) {
	dec, err := Decoder(r, charset)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(dec)

	header, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	header = strings.TrimPrefix(header, "\ufeff")
	delim := ','
	if strings.Contains(header, ";") {
		delim = ';'
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	res := &Result{Skipped: map[int]string{}}
	seen := map[string]bool{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Skipped[perr.StartLine+1] = perr.Err.Error()
				continue
			}
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		if blankRecord(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		line++ // la cabecera se leyó aparte
		if len(rec) < MinColumns {
			res.Skipped[line] = fmt.Sprintf("se esperaban %d+ columnas, se encontraron %d", MinColumns, len(rec))
			continue
		}
		e := toEmployee(rec)
		if e.Code == "" {
			res.Skipped[line] = "código de empleado vacío"
			continue
		}
		if seen[e.Code] {
			res.Skipped[line] = "código repetido " + e.Code
			continue
		}
		seen[e.Code] = true
		res.Employees = append(res.Employees, e)
	}
	return res, nil
}

func toEmployee(rec []string) entity.Employee {
	col := func(i, max int) string {
		if i >= len(rec) {
			return ""
		}
		return identity.Truncate(rec[i], max)
	}
	e := entity.Employee{
		Code:       col(0, entity.MaxEmployeeCodeLen),
		FirstName:  col(1, entity.MaxEmployeeNamePartLen),
		LastName1:  col(2, entity.MaxEmployeeNamePartLen),
		LastName2:  col(3, entity.MaxEmployeeNamePartLen),
		Email:      col(4, entity.MaxEmployeeEmailLen),
		Department: col(5, entity.MaxDepartmentLen),
		Status:     col(6, entity.MaxEmployeeStatusLen),
	}
	if e.Status == "" {
		e.Status = entity.EmployeeStatusActive
	}
	return e
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
