package mockdb

import (
	"context"
	"testing"

	"github.com/treinalab/treinalab/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	coachProfile = Profile{ID: "p1", UserID: "u1", Role: RolePersonal, FullName: "Lucas Personal"}
	// Matheus Alves, enrolled as a1 under coach p1
	studentProfile = Profile{ID: "p2", UserID: "u2", Role: RoleAluno, FullName: "Matheus Alves"}
)

func TestPolicy_noSessionSeesEverything(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(storage.NewMemoryStore(), &stubSessions{ok: false})

	res := store.From(TableAlunos).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 3)

	res = store.From(TableUsers).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 4)
}

func TestPolicy_coachSeesOnlyOwnStudents(t *testing.T) {
	ctx := context.Background()
	sessions := &stubSessions{profile: coachProfile, ok: true}
	store := newTestStore(storage.NewMemoryStore(), sessions)

	// a student enrolled under some other coach
	res := store.From(TableAlunos).Insert(Aluno{
		ID:         "a_outro",
		PersonalID: "p_outro",
		ProfileID:  "p_x",
	}).Exec(ctx)
	require.Nil(t, res.Err)

	res = store.From(TableAlunos).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 3)
	for _, row := range res.Rows {
		assert.Equal(t, "p1", row.(Aluno).PersonalID)
	}

	// the foreign coach sees only their own student
	sessions.profile = Profile{ID: "p_outro", Role: RolePersonal}
	res = store.From(TableAlunos).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "a_outro", res.Rows[0].RowID())
}

func TestPolicy_coachProfileVisibility(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(storage.NewMemoryStore(), &stubSessions{profile: coachProfile, ok: true})

	res := store.From(TableProfiles).Exec(ctx)
	require.Nil(t, res.Err)

	// own profile plus the profiles of the three enrolled students
	visible := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		visible = append(visible, row.RowID())
	}
	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p4"}, visible)
}

func TestPolicy_coachScopedTables(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(storage.NewMemoryStore(), &stubSessions{profile: coachProfile, ok: true})

	res := store.From(TableTreinos).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 3)

	res = store.From(TableTreinosExercicios).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 5)

	res = store.From(TableMedidas).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 3)

	// exercise library has no ownership rule for coaches
	res = store.From(TableExercicios).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 5)
}

func TestPolicy_studentVisibility(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(storage.NewMemoryStore(), &stubSessions{profile: studentProfile, ok: true})

	res := store.From(TableProfiles).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "p2", res.Rows[0].RowID())

	res = store.From(TableAlunos).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "a1", res.Rows[0].RowID())

	res = store.From(TableTreinos).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "t1", res.Rows[0].RowID())

	// only the line items of the student's own plans
	res = store.From(TableTreinosExercicios).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 3)
	for _, row := range res.Rows {
		assert.Equal(t, "t1", row.(TreinoExercicio).TreinoID)
	}

	res = store.From(TableMedidas).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 2)

	res = store.From(TableProgresso).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 2)
}

func TestPolicy_studentReadsOwnUserRowOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(storage.NewMemoryStore(), &stubSessions{profile: studentProfile, ok: true})

	res := store.From(TableUsers).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 1)
	user := res.Rows[0].(User)
	assert.Equal(t, "u2", user.ID)
	assert.Equal(t, "matheus.alves@teste.com", user.Email)
}

func TestPolicy_studentWithoutEnrollment(t *testing.T) {
	ctx := context.Background()
	// a student profile with no aluno row at all
	orphan := Profile{ID: "p_orfao", UserID: "u_orfao", Role: RoleAluno}
	store := newTestStore(storage.NewMemoryStore(), &stubSessions{profile: orphan, ok: true})

	res := store.From(TableTreinos).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Empty(t, res.Rows)

	res = store.From(TableMedidas).Exec(ctx)
	require.Nil(t, res.Err)
	assert.Empty(t, res.Rows)
}

func TestPolicy_enforcedWriteAuthorization(t *testing.T) {
	ctx := context.Background()
	sessions := &stubSessions{profile: studentProfile, ok: true}
	store := NewStore(storage.NewMemoryStore(), sessions, Options{
		Latency:                   1,
		EnforceWriteAuthorization: true,
	})

	// a student cannot touch another student's enrollment
	res := store.From(TableAlunos).
		Update(map[string]any{"objetivo": "Invadido"}).
		Eq("id", "a2").
		Exec(ctx)
	require.Nil(t, res.Err)
	assert.Empty(t, res.Rows)

	// nor insert progress on behalf of someone else
	res = store.From(TableProgresso).Insert(Progresso{
		ID:      "pr_x",
		AlunoID: "a2",
	}).Exec(ctx)
	require.NotNil(t, res.Err)
	assert.Equal(t, "Operação não autorizada.", res.Err.Message)

	// own rows stay writable
	res = store.From(TableProgresso).Insert(Progresso{
		ID:      "pr_proprio",
		AlunoID: "a1",
	}).Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 1)
}

func TestPolicy_defaultWritesBypassAuthorization(t *testing.T) {
	ctx := context.Background()
	sessions := &stubSessions{profile: studentProfile, ok: true}
	store := newTestStore(storage.NewMemoryStore(), sessions)

	// without enforcement the same cross-student update goes through
	res := store.From(TableAlunos).
		Update(map[string]any{"objetivo": "Alterado"}).
		Eq("id", "a2").
		Exec(ctx)
	require.Nil(t, res.Err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Alterado", res.Rows[0].(Aluno).Objetivo)
}
