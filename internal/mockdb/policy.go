package mockdb

import "context"

// applyPolicies filters rows down to what the active session may see,
// mimicking row-level security. No session means no filtering. The policy
// is total: table names without an explicit rule pass through unrestricted
// (personal) or fall back to the auth-user ownership check (aluno).
func (s *Store) applyPolicies(ctx context.Context, table string, rows []Row, tables *tableSet) []Row {
	if s.sessions == nil {
		return rows
	}
	profile, ok := s.sessions.ActiveProfile(ctx)
	if !ok {
		return rows
	}

	switch profile.Role {
	case RolePersonal:
		return filterForPersonal(profile, table, rows, tables)
	case RoleAluno:
		return filterForAluno(profile, table, rows, tables)
	}
	return rows
}

func filterForPersonal(profile Profile, table string, rows []Row, tables *tableSet) []Row {
	switch table {
	case TableAlunos, TableTreinos:
		return keepRows(rows, func(row Row) bool {
			owned, ok := row.(PersonalOwned)
			return ok && owned.OwnerPersonalID() == profile.ID
		})

	case TableProfiles:
		visible := map[string]bool{profile.ID: true}
		for _, aluno := range tables.Alunos {
			if aluno.PersonalID == profile.ID {
				visible[aluno.ProfileID] = true
			}
		}
		return keepRows(rows, func(row Row) bool {
			return visible[row.RowID()]
		})

	case TableTreinosExercicios:
		return keepRows(rows, func(row Row) bool {
			item, ok := row.(TreinoScoped)
			if !ok {
				return false
			}
			treino, found := tables.treinoByID(item.ParentTreinoID())
			return found && treino.PersonalID == profile.ID
		})

	case TableProgresso, TableFeedback, TableVideosCorrecao, TableMedidas:
		return keepRows(rows, func(row Row) bool {
			owned, ok := row.(AlunoOwned)
			if !ok {
				return false
			}
			aluno, found := tables.alunoByID(owned.OwnerAlunoID())
			return found && aluno.PersonalID == profile.ID
		})
	}

	return rows
}

func filterForAluno(profile Profile, table string, rows []Row, tables *tableSet) []Row {
	// the caller's own enrollment record, possibly absent
	alunoID := ""
	if aluno, ok := tables.alunoByProfileID(profile.ID); ok {
		alunoID = aluno.ID
	}

	switch table {
	case TableProfiles:
		return keepRows(rows, func(row Row) bool {
			return row.RowID() == profile.ID
		})

	case TableAlunos:
		return keepRows(rows, func(row Row) bool {
			return alunoID != "" && row.RowID() == alunoID
		})

	case TableTreinos:
		return keepRows(rows, func(row Row) bool {
			owned, ok := row.(AlunoOwned)
			return ok && alunoID != "" && owned.OwnerAlunoID() == alunoID
		})

	case TableTreinosExercicios:
		return keepRows(rows, func(row Row) bool {
			item, ok := row.(TreinoScoped)
			if !ok {
				return false
			}
			treino, found := tables.treinoByID(item.ParentTreinoID())
			return found && alunoID != "" && treino.AlunoID == alunoID
		})

	case TableProgresso, TableFeedback, TableVideosCorrecao, TableMedidas:
		return keepRows(rows, func(row Row) bool {
			owned, ok := row.(AlunoOwned)
			return ok && alunoID != "" && owned.OwnerAlunoID() == alunoID
		})
	}

	// fallback for tables without ownership columns (e.g. users): a student
	// may read only the rows resolving to their own auth user
	return keepRows(rows, func(row Row) bool {
		owned, ok := row.(UserOwned)
		return ok && owned.OwnerUserID() == profile.UserID
	})
}

func keepRows(rows []Row, keep func(Row) bool) []Row {
	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	return kept
}
