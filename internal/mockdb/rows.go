package mockdb

import "time"

// Table names mirror the keys of the persisted snapshot JSON.
const (
	TableUsers             = "users"
	TableProfiles          = "profiles"
	TableAlunos            = "alunos"
	TableTreinos           = "treinos"
	TableExercicios        = "exercicios"
	TableTreinosExercicios = "treinos_exercicios"
	TableMedidas           = "medidas"
	TableProgresso         = "progresso"
	TableFeedback          = "feedback"
	TableVideosCorrecao    = "videos_correcao"
)

const (
	RolePersonal = "personal"
	RoleAluno    = "aluno"
)

// Row is implemented by every table record. Rows are plain value types,
// deep-cloned through their JSON form whenever they cross the engine boundary.
type Row interface {
	RowID() string
	TableName() string
}

// PersonalOwned marks rows carrying a direct coach ownership column.
type PersonalOwned interface {
	Row
	OwnerPersonalID() string
}

// AlunoOwned marks rows carrying a direct student ownership column.
type AlunoOwned interface {
	Row
	OwnerAlunoID() string
}

// UserOwned marks rows resolvable to an auth user, the fallback the policy
// uses for tables without coach/student ownership columns.
type UserOwned interface {
	Row
	OwnerUserID() string
}

// TreinoScoped marks rows owned indirectly through their parent workout plan.
type TreinoScoped interface {
	Row
	ParentTreinoID() string
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u User) RowID() string       { return u.ID }
func (u User) TableName() string   { return TableUsers }
func (u User) OwnerUserID() string { return u.ID }

type Profile struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

func (p Profile) RowID() string       { return p.ID }
func (p Profile) TableName() string   { return TableProfiles }
func (p Profile) OwnerUserID() string { return p.UserID }

// ProgressoMeta is the weekly progress/goal pair shown on student dashboards.
type ProgressoMeta struct {
	Semana int `json:"semana"`
	Meta   int `json:"meta"`
}

// Aluno is the enrollment record linking a student profile to a coach.
type Aluno struct {
	ID            string        `json:"id"`
	PersonalID    string        `json:"personal_id"`
	ProfileID     string        `json:"profile_id"`
	Objetivo      string        `json:"objetivo"`
	Idade         int           `json:"idade,omitempty"`
	PesoAtualKg   float64       `json:"peso_atual_kg,omitempty"`
	AlturaM       float64       `json:"altura_m,omitempty"`
	ProgressoMeta ProgressoMeta `json:"progresso_meta"`
	Marcadores    []string      `json:"marcadores,omitempty"`
}

func (a Aluno) RowID() string           { return a.ID }
func (a Aluno) TableName() string       { return TableAlunos }
func (a Aluno) OwnerPersonalID() string { return a.PersonalID }

type Exercicio struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Grupo       string `json:"grupo"`
	Equipamento string `json:"equipamento"`
	Imagem      string `json:"imagem,omitempty"`
	Video       string `json:"video,omitempty"`
	Foco        string `json:"foco,omitempty"`
}

func (e Exercicio) RowID() string     { return e.ID }
func (e Exercicio) TableName() string { return TableExercicios }

// Treino is a workout plan assigned to a student for one weekday.
type Treino struct {
	ID         string `json:"id"`
	AlunoID    string `json:"aluno_id"`
	PersonalID string `json:"personal_id"`
	Nome       string `json:"nome"`
	DiaSemana  int    `json:"dia_semana"`
	Descricao  string `json:"descricao,omitempty"`
	Objetivo   string `json:"objetivo,omitempty"`
}

func (t Treino) RowID() string           { return t.ID }
func (t Treino) TableName() string       { return TableTreinos }
func (t Treino) OwnerPersonalID() string { return t.PersonalID }
func (t Treino) OwnerAlunoID() string    { return t.AlunoID }

// TreinoExercicio is one prescribed exercise line within a workout plan.
type TreinoExercicio struct {
	ID          string   `json:"id"`
	TreinoID    string   `json:"treino_id"`
	ExercicioID string   `json:"exercicio_id"`
	Series      int      `json:"series"`
	Repeticoes  string   `json:"repeticoes"`
	CargaKg     *float64 `json:"carga_kg,omitempty"`
	DescansoS   int      `json:"descanso_s"`
	Order       int      `json:"order"`
	Intensidade string   `json:"intensidade,omitempty"`
	Instrucoes  string   `json:"instrucoes,omitempty"`
}

func (te TreinoExercicio) RowID() string          { return te.ID }
func (te TreinoExercicio) TableName() string      { return TableTreinosExercicios }
func (te TreinoExercicio) ParentTreinoID() string { return te.TreinoID }

type Medida struct {
	ID                string    `json:"id"`
	AlunoID           string    `json:"aluno_id"`
	CreatedAt         time.Time `json:"created_at"`
	PesoKg            float64   `json:"peso_kg"`
	AlturaCm          float64   `json:"altura_cm"`
	GorduraPercentual *float64  `json:"gordura_percentual,omitempty"`
	BracoCm           *float64  `json:"braco_cm,omitempty"`
	CinturaCm         *float64  `json:"cintura_cm,omitempty"`
	QuadrilCm         *float64  `json:"quadril_cm,omitempty"`
}

func (m Medida) RowID() string        { return m.ID }
func (m Medida) TableName() string    { return TableMedidas }
func (m Medida) OwnerAlunoID() string { return m.AlunoID }

type ProgressoMetricas struct {
	SeriesConcluidas int     `json:"series_concluidas"`
	RepeticoesTotais int     `json:"repeticoes_totais,omitempty"`
	CargaTotalKg     float64 `json:"carga_total_kg,omitempty"`
	TempoTotalS      int     `json:"tempo_total_s,omitempty"`
}

// Progresso logs one executed exercise of a workout session.
type Progresso struct {
	ID                string            `json:"id"`
	AlunoID           string            `json:"aluno_id"`
	TreinoID          string            `json:"treino_id"`
	TreinoExercicioID string            `json:"treino_exercicio_id"`
	Data              time.Time         `json:"data"`
	Metricas          ProgressoMetricas `json:"metricas"`
	Observacoes       string            `json:"observacoes,omitempty"`
}

func (p Progresso) RowID() string        { return p.ID }
func (p Progresso) TableName() string    { return TableProgresso }
func (p Progresso) OwnerAlunoID() string { return p.AlunoID }

type Feedback struct {
	ID                string    `json:"id"`
	AlunoID           string    `json:"aluno_id"`
	TreinoID          string    `json:"treino_id"`
	TreinoExercicioID string    `json:"treino_exercicio_id"`
	Mensagem          string    `json:"mensagem"`
	Avaliacao         int       `json:"avaliacao,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (f Feedback) RowID() string        { return f.ID }
func (f Feedback) TableName() string    { return TableFeedback }
func (f Feedback) OwnerAlunoID() string { return f.AlunoID }

type VideoCorrecao struct {
	ID                string    `json:"id"`
	AlunoID           string    `json:"aluno_id"`
	TreinoExercicioID string    `json:"treino_exercicio_id"`
	VideoURL          string    `json:"video_url"`
	ThumbnailURL      string    `json:"thumbnail_url,omitempty"`
	Comentario        string    `json:"comentario,omitempty"`
	EnviadoEm         time.Time `json:"enviado_em"`
}

func (vc VideoCorrecao) RowID() string        { return vc.ID }
func (vc VideoCorrecao) TableName() string    { return TableVideosCorrecao }
func (vc VideoCorrecao) OwnerAlunoID() string { return vc.AlunoID }
