package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/greenstore-api/internal/domain/entity"
)

func TestDiscount_IsActiveAt(t *testing.T) {
	// miércoles 10:30
	now := time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)
	end := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name string
		d    entity.Discount
		want bool
	}{
		{"inactivo", entity.Discount{Active: false}, false},
		{"activo sin ventanas", entity.Discount{Active: true}, true},
		{"día permitido", entity.Discount{Active: true, DaysOfWeek: []int{1, 3}}, true},
		{"día no permitido", entity.Discount{Active: true, DaysOfWeek: []int{0, 6}}, false},
		{"dentro del rango de fechas", entity.Discount{Active: true, StartsAt: &start, EndsAt: &end}, true},
		{"rango vencido", entity.Discount{Active: true, EndsAt: &past}, false},
		{"dentro del horario", entity.Discount{Active: true, StartsTime: "09:00", EndsTime: "12:00"}, true},
		{"fuera del horario", entity.Discount{Active: true, StartsTime: "18:00", EndsTime: "22:00"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.IsActiveAt(now))
		})
	}
}

func TestDiscount_AppliesTo(t *testing.T) {
	p := &entity.Product{ID: "p1", CategoryID: "frutas"}

	assert.True(t, (&entity.Discount{}).AppliesTo(p))
	assert.True(t, (&entity.Discount{TargetType: entity.TargetAll}).AppliesTo(p))
	assert.True(t, (&entity.Discount{TargetType: entity.TargetProduct, TargetValue: "p1"}).AppliesTo(p))
	assert.False(t, (&entity.Discount{TargetType: entity.TargetProduct, TargetValue: "p2"}).AppliesTo(p))
	assert.True(t, (&entity.Discount{TargetType: entity.TargetCategory, TargetValue: "frutas"}).AppliesTo(p))
	assert.False(t, (&entity.Discount{TargetType: entity.TargetCategory, TargetValue: "lacteos"}).AppliesTo(p))
	assert.True(t, (&entity.Discount{TargetType: entity.TargetCombo, TargetValue: "p9, p1"}).AppliesTo(p))
	assert.False(t, (&entity.Discount{TargetType: entity.TargetCombo, TargetValue: "p9,p8"}).AppliesTo(p))
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, entity.RoleAtLeast(entity.RoleAdmin, entity.RoleManager))
	assert.True(t, entity.RoleAtLeast(entity.RoleManager, entity.RoleManager))
	assert.False(t, entity.RoleAtLeast(entity.RoleSupervisor, entity.RoleManager))
	assert.False(t, entity.RoleAtLeast("intruso", entity.RoleOperator))
}
