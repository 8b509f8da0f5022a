package postgres

import (
	"testing"

	"github.com/jhoicas/Ideas-api/internal/domain/report"
	"github.com/stretchr/testify/assert"
)

func TestFilterClause(t *testing.T) {
	t.Run("inactivo", func(t *testing.T) {
		args := &sqlArgs{}
		assert.Empty(t, filterClause("i.via", report.ParseFilter(report.DimensionVia, []string{" ", ""}), args))
		assert.Empty(t, args.values)
	})

	t.Run("solo token desconocido", func(t *testing.T) {
		args := &sqlArgs{}
		got := filterClause("i.via", report.ParseFilter(report.DimensionVia, []string{"SIN VÍA"}), args)
		assert.Equal(t, "(btrim(COALESCE(i.via, '')) = '')", got)
		assert.Empty(t, args.values)
	})

	t.Run("literal y token desconocido", func(t *testing.T) {
		args := &sqlArgs{values: []any{"since"}}
		got := filterClause("e.department", report.ParseFilter(report.DimensionDepartment, []string{"Ventas", "Sin Departamento", "Ventas"}), args)
		assert.Equal(t, "(e.department = ANY($2) OR btrim(COALESCE(e.department, '')) = '')", got)
		assert.Equal(t, []any{"since", []string{"Ventas"}}, args.values)
	})

	t.Run("status sin token", func(t *testing.T) {
		args := &sqlArgs{}
		got := filterClause("i.status", report.ParseFilter(report.DimensionStatus, []string{"Sin Clasificar"}), args)
		assert.Equal(t, "(i.status = ANY($1))", got)
	})
}

func TestDimensionColumn(t *testing.T) {
	col, err := dimensionColumn(report.DimensionInstance)
	assert.NoError(t, err)
	assert.Equal(t, "u.instance", col)

	_, err = dimensionColumn(report.Dimension("otra"))
	assert.Error(t, err)
}
