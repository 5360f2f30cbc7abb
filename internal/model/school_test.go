package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapHint(t *testing.T) {
	existing := []Reservation{
		{ID: 1, Start: "2026-09-01T08:00", End: "2026-09-01T10:00", Period: PeriodMorning, ClassroomID: 1},
		{ID: 2, Start: "2026-09-01T19:00", End: "2026-09-01T21:00", Period: PeriodEvening, ClassroomID: 2},
	}

	t.Run("same room, start and period clashes", func(t *testing.T) {
		candidate := Reservation{Start: "2026-09-01T08:00", Period: PeriodMorning, ClassroomID: 1}
		assert.True(t, OverlapHint(existing, candidate, 0))
	})

	t.Run("different room is free", func(t *testing.T) {
		candidate := Reservation{Start: "2026-09-01T08:00", Period: PeriodMorning, ClassroomID: 3}
		assert.False(t, OverlapHint(existing, candidate, 0))
	})

	t.Run("different period is free", func(t *testing.T) {
		candidate := Reservation{Start: "2026-09-01T08:00", Period: PeriodAfternoon, ClassroomID: 1}
		assert.False(t, OverlapHint(existing, candidate, 0))
	})

	t.Run("editing a reservation skips itself", func(t *testing.T) {
		candidate := Reservation{ID: 1, Start: "2026-09-01T08:00", Period: PeriodMorning, ClassroomID: 1}
		assert.False(t, OverlapHint(existing, candidate, 1))
	})

	t.Run("empty list never warns", func(t *testing.T) {
		assert.False(t, OverlapHint(nil, Reservation{}, 0))
	})
}

func TestRole(t *testing.T) {
	assert.True(t, RoleManager.IsManager())
	assert.False(t, RoleManager.IsTeacher())
	assert.True(t, RoleTeacher.IsTeacher())
	assert.Equal(t, "Gestor", RoleManager.Label())
	assert.Equal(t, "Professor", RoleTeacher.Label())
	assert.Equal(t, "X", Role("X").Label())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ana Souza", User{FirstName: "Ana", LastName: "Souza"}.FullName())
	assert.Equal(t, "Ana", User{FirstName: "Ana"}.FullName())
	assert.Equal(t, "ana.souza", User{Username: "ana.souza"}.FullName())
}

func TestUser_JSONNamesMatchRemoteAPI(t *testing.T) {
	user := User{
		Username: "ana", Phone: "11 99999-0000", Role: RoleTeacher,
		NI: 42, BirthDate: "1990-01-02", HireDate: "2020-03-04",
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "telefone")
	assert.Contains(t, raw, "tipo")
	assert.Contains(t, raw, "ni")
	assert.Contains(t, raw, "data_nascimento")
	assert.Contains(t, raw, "data_contratacao")
	assert.NotContains(t, raw, "password")
}

func TestReservation_JSONNamesMatchRemoteAPI(t *testing.T) {
	data, err := json.Marshal(Reservation{
		Start: "2026-09-01T08:00", End: "2026-09-01T10:00", Period: PeriodMorning,
		ClassroomID: 1, TeacherID: 2, DisciplineID: 3,
	})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"data_inicio", "data_termino", "periodo", "sala_reservada", "professor_responsavel", "disciplina_associada"} {
		assert.Contains(t, raw, key)
	}
}
