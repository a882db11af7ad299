package mockdb

import (
	"bytes"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// tableSet is the full relational state, the same shape as the persisted
// snapshot JSON.
type tableSet struct {
	Users             []User            `json:"users"`
	Profiles          []Profile         `json:"profiles"`
	Alunos            []Aluno           `json:"alunos"`
	Treinos           []Treino          `json:"treinos"`
	Exercicios        []Exercicio       `json:"exercicios"`
	TreinosExercicios []TreinoExercicio `json:"treinos_exercicios"`
	Medidas           []Medida          `json:"medidas"`
	Progresso         []Progresso       `json:"progresso"`
	Feedback          []Feedback        `json:"feedback"`
	VideosCorrecao    []VideoCorrecao   `json:"videos_correcao"`
}

func toRows[T Row](items []T) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, item)
	}
	return rows
}

func fromRows[T Row](rows []Row) ([]T, error) {
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, ok := row.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected row type %T in table %s", row, row.TableName())
		}
		items = append(items, item)
	}
	return items, nil
}

// rows returns the ordered records of the named table, ok=false for an
// unknown table name.
func (ts *tableSet) rows(table string) ([]Row, bool) {
	switch table {
	case TableUsers:
		return toRows(ts.Users), true
	case TableProfiles:
		return toRows(ts.Profiles), true
	case TableAlunos:
		return toRows(ts.Alunos), true
	case TableTreinos:
		return toRows(ts.Treinos), true
	case TableExercicios:
		return toRows(ts.Exercicios), true
	case TableTreinosExercicios:
		return toRows(ts.TreinosExercicios), true
	case TableMedidas:
		return toRows(ts.Medidas), true
	case TableProgresso:
		return toRows(ts.Progresso), true
	case TableFeedback:
		return toRows(ts.Feedback), true
	case TableVideosCorrecao:
		return toRows(ts.VideosCorrecao), true
	}
	return nil, false
}

// setRows replaces the named table content, keeping the given order.
func (ts *tableSet) setRows(table string, rows []Row) error {
	var err error
	switch table {
	case TableUsers:
		ts.Users, err = fromRows[User](rows)
	case TableProfiles:
		ts.Profiles, err = fromRows[Profile](rows)
	case TableAlunos:
		ts.Alunos, err = fromRows[Aluno](rows)
	case TableTreinos:
		ts.Treinos, err = fromRows[Treino](rows)
	case TableExercicios:
		ts.Exercicios, err = fromRows[Exercicio](rows)
	case TableTreinosExercicios:
		ts.TreinosExercicios, err = fromRows[TreinoExercicio](rows)
	case TableMedidas:
		ts.Medidas, err = fromRows[Medida](rows)
	case TableProgresso:
		ts.Progresso, err = fromRows[Progresso](rows)
	case TableFeedback:
		ts.Feedback, err = fromRows[Feedback](rows)
	case TableVideosCorrecao:
		ts.VideosCorrecao, err = fromRows[VideoCorrecao](rows)
	default:
		err = fmt.Errorf("unknown table %s", table)
	}
	return err
}

// overlay replaces every table whose name is present as a valid array in the
// persisted snapshot. Tables that fail to decode are skipped, falling back to
// the seed content for that table.
func (ts *tableSet) overlay(persisted map[string]json.RawMessage) {
	for name, raw := range persisted {
		if len(raw) == 0 {
			continue
		}
		var decodeErr error
		switch name {
		case TableUsers:
			decodeErr = overlayTable(raw, &ts.Users)
		case TableProfiles:
			decodeErr = overlayTable(raw, &ts.Profiles)
		case TableAlunos:
			decodeErr = overlayTable(raw, &ts.Alunos)
		case TableTreinos:
			decodeErr = overlayTable(raw, &ts.Treinos)
		case TableExercicios:
			decodeErr = overlayTable(raw, &ts.Exercicios)
		case TableTreinosExercicios:
			decodeErr = overlayTable(raw, &ts.TreinosExercicios)
		case TableMedidas:
			decodeErr = overlayTable(raw, &ts.Medidas)
		case TableProgresso:
			decodeErr = overlayTable(raw, &ts.Progresso)
		case TableFeedback:
			decodeErr = overlayTable(raw, &ts.Feedback)
		case TableVideosCorrecao:
			decodeErr = overlayTable(raw, &ts.VideosCorrecao)
		default:
			log.Warnf("persisted snapshot contains unknown table [%s], ignoring", name)
		}
		if decodeErr != nil {
			log.Warnf("persisted table [%s] not decodable, keeping seed data: %s", name, decodeErr)
		}
	}
}

func overlayTable[T Row](raw json.RawMessage, target *[]T) error {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	*target = items
	return nil
}

func (ts *tableSet) treinoByID(id string) (Treino, bool) {
	for _, t := range ts.Treinos {
		if t.ID == id {
			return t, true
		}
	}
	return Treino{}, false
}

func (ts *tableSet) alunoByID(id string) (Aluno, bool) {
	for _, a := range ts.Alunos {
		if a.ID == id {
			return a, true
		}
	}
	return Aluno{}, false
}

func (ts *tableSet) alunoByProfileID(profileID string) (Aluno, bool) {
	for _, a := range ts.Alunos {
		if a.ProfileID == profileID {
			return a, true
		}
	}
	return Aluno{}, false
}

func (ts *tableSet) profileByID(id string) (Profile, bool) {
	for _, p := range ts.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

func (ts *tableSet) profileByUserID(userID string) (Profile, bool) {
	for _, p := range ts.Profiles {
		if p.UserID == userID {
			return p, true
		}
	}
	return Profile{}, false
}

func (ts *tableSet) userByEmail(email string) (User, bool) {
	for _, u := range ts.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

func (ts *tableSet) exercicioByID(id string) (Exercicio, bool) {
	for _, e := range ts.Exercicios {
		if e.ID == id {
			return e, true
		}
	}
	return Exercicio{}, false
}

func (ts *tableSet) treinoExercicioByID(id string) (TreinoExercicio, bool) {
	for _, te := range ts.TreinosExercicios {
		if te.ID == id {
			return te, true
		}
	}
	return TreinoExercicio{}, false
}

// decodeRow unmarshals one record of the named table into its concrete type.
func decodeRow(table string, data []byte) (Row, error) {
	switch table {
	case TableUsers:
		return decodeAs[User](data)
	case TableProfiles:
		return decodeAs[Profile](data)
	case TableAlunos:
		return decodeAs[Aluno](data)
	case TableTreinos:
		return decodeAs[Treino](data)
	case TableExercicios:
		return decodeAs[Exercicio](data)
	case TableTreinosExercicios:
		return decodeAs[TreinoExercicio](data)
	case TableMedidas:
		return decodeAs[Medida](data)
	case TableProgresso:
		return decodeAs[Progresso](data)
	case TableFeedback:
		return decodeAs[Feedback](data)
	case TableVideosCorrecao:
		return decodeAs[VideoCorrecao](data)
	}
	return nil, fmt.Errorf("unknown table %s", table)
}

func decodeAs[T Row](data []byte) (Row, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// cloneRow deep-clones a row through its JSON form, so stored rows and
// returned rows never alias each other.
func cloneRow(row Row) (Row, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("clone row %s/%s: %w", row.TableName(), row.RowID(), err)
	}
	return decodeRow(row.TableName(), data)
}

// mergeRow shallow-merges a partial payload onto a clone of the row,
// producing a new row of the same concrete type.
func mergeRow(row Row, patch map[string]any) (Row, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		return nil, err
	}
	for column, value := range patch {
		asMap[column] = value
	}
	merged, err := json.Marshal(asMap)
	if err != nil {
		return nil, err
	}
	return decodeRow(row.TableName(), merged)
}

// fieldValue exposes one column of a row through its JSON form, the
// attribute bag the generic filters operate on.
func fieldValue(row Row, column string) (any, bool) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, false
	}
	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		return nil, false
	}
	value, ok := asMap[column]
	return value, ok
}

// valuesEqual compares two values through their canonical JSON form, so an
// int payload value matches the float64 a decoded row column carries.
func valuesEqual(a, b any) bool {
	aJSON, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bJSON, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(aJSON, bJSON)
}
