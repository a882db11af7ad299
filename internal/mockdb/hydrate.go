package mockdb

import "sort"

// Relation names a supported relationship embedding. Projections are
// structured flags instead of the free-text column spec of a real client,
// so an unsupported request fails instead of being silently ignored.
type Relation string

const (
	// RelationProfile embeds the linked profile on aluno rows.
	RelationProfile Relation = "profiles"
	// RelationPlanExercises embeds the plan line items, each with its
	// exercise, on treino rows.
	RelationPlanExercises Relation = "treinos_exercicios(exercicios)"
	// RelationPlanItem embeds the single referenced plan line item on
	// correction video rows.
	RelationPlanItem Relation = "treinos_exercicios"
)

// AlunoComPerfil is an aluno row hydrated with its profile, nil when the
// reference does not resolve.
type AlunoComPerfil struct {
	Aluno
	Profile *Profile `json:"profiles"`
}

// TreinoExercicioComExercicio is a plan line item hydrated with its exercise.
type TreinoExercicioComExercicio struct {
	TreinoExercicio
	Exercicio *Exercicio `json:"exercicios"`
}

// TreinoComItens is a treino row hydrated with its line items, sorted
// ascending by their order column.
type TreinoComItens struct {
	Treino
	Itens []TreinoExercicioComExercicio `json:"treinos_exercicios"`
}

// VideoComItem is a correction video hydrated with its plan line item.
type VideoComItem struct {
	VideoCorrecao
	Item *TreinoExercicio `json:"treinos_exercicios"`
}

// hydrate attaches the requested relations to the result rows. Hydration is
// purely additive and tolerates dangling references by embedding nil.
func hydrate(table string, rows []Row, relations []Relation, tables *tableSet) ([]Row, *Error) {
	for _, relation := range relations {
		switch {
		case table == TableAlunos && relation == RelationProfile:
			rows = hydrateAlunoProfiles(rows, tables)
		case table == TableTreinos && relation == RelationPlanExercises:
			rows = hydrateTreinoItens(rows, tables)
		case table == TableVideosCorrecao && relation == RelationPlanItem:
			rows = hydrateVideoItens(rows, tables)
		default:
			return nil, errorf("Relação %s não suportada para a tabela %s.", relation, table)
		}
	}
	return rows, nil
}

func hydrateAlunoProfiles(rows []Row, tables *tableSet) []Row {
	hydrated := make([]Row, 0, len(rows))
	for _, row := range rows {
		aluno, ok := row.(Aluno)
		if !ok {
			hydrated = append(hydrated, row)
			continue
		}
		enriched := AlunoComPerfil{Aluno: aluno}
		if profile, found := tables.profileByID(aluno.ProfileID); found {
			enriched.Profile = &profile
		}
		hydrated = append(hydrated, enriched)
	}
	return hydrated
}

func hydrateTreinoItens(rows []Row, tables *tableSet) []Row {
	hydrated := make([]Row, 0, len(rows))
	for _, row := range rows {
		treino, ok := row.(Treino)
		if !ok {
			hydrated = append(hydrated, row)
			continue
		}

		itens := make([]TreinoExercicioComExercicio, 0)
		for _, item := range tables.TreinosExercicios {
			if item.TreinoID != treino.ID {
				continue
			}
			enriched := TreinoExercicioComExercicio{TreinoExercicio: item}
			if exercicio, found := tables.exercicioByID(item.ExercicioID); found {
				enriched.Exercicio = &exercicio
			}
			itens = append(itens, enriched)
		}
		sort.Slice(itens, func(i, j int) bool {
			return itens[i].Order < itens[j].Order
		})

		hydrated = append(hydrated, TreinoComItens{Treino: treino, Itens: itens})
	}
	return hydrated
}

func hydrateVideoItens(rows []Row, tables *tableSet) []Row {
	hydrated := make([]Row, 0, len(rows))
	for _, row := range rows {
		video, ok := row.(VideoCorrecao)
		if !ok {
			hydrated = append(hydrated, row)
			continue
		}
		enriched := VideoComItem{VideoCorrecao: video}
		if item, found := tables.treinoExercicioByID(video.TreinoExercicioID); found {
			enriched.Item = &item
		}
		hydrated = append(hydrated, enriched)
	}
	return hydrated
}
