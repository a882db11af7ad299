package mockdb

import "time"

// weekDay returns the weekday index (0-6) offset from today, so the seeded
// workout plans always include one for the current day.
func weekDay(offset int) int {
	current := int(time.Now().Weekday())
	return ((current+offset)%7 + 7) % 7
}

func daysAgo(days int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day()-days, 0, 0, 0, 0, time.UTC)
}

func monthsAgo(months, day int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month()-time.Month(months), day, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 {
	return &v
}

// seedTables builds a fresh copy of the hand-authored demo dataset. Every
// call returns newly allocated values, so callers can mutate the result
// without affecting later seeds.
func seedTables() *tableSet {
	return &tableSet{
		Users: []User{
			{ID: "u1", Email: "personal@teste.com"},
			{ID: "u2", Email: "matheus.alves@teste.com"},
			{ID: "u3", Email: "joana.melo@teste.com"},
			{ID: "u4", Email: "carla.sousa@teste.com"},
		},
		Profiles: []Profile{
			{
				ID:        "p1",
				UserID:    "u1",
				Role:      RolePersonal,
				FullName:  "Lucas Personal",
				AvatarURL: "/avatars/lucas-personal.svg",
				Bio:       "Personal trainer especializado em performance híbrida.",
			},
			{
				ID:        "p2",
				UserID:    "u2",
				Role:      RoleAluno,
				FullName:  "Matheus Alves",
				AvatarURL: "/avatars/matheus-alves.svg",
				Bio:       "Engenheiro apaixonado por treinos de força e corridas curtas.",
			},
			{
				ID:        "p3",
				UserID:    "u3",
				Role:      RoleAluno,
				FullName:  "Joana Melo",
				AvatarURL: "/avatars/joana-melo.svg",
				Bio:       "Empresária que transformou o treino funcional em estilo de vida.",
			},
			{
				ID:        "p4",
				UserID:    "u4",
				Role:      RoleAluno,
				FullName:  "Carla Sousa",
				AvatarURL: "/avatars/carla-sousa.svg",
				Bio:       "Fisioterapeuta buscando equilíbrio entre força e mobilidade.",
			},
		},
		Alunos: []Aluno{
			{
				ID:            "a1",
				PersonalID:    "p1",
				ProfileID:     "p2",
				Objetivo:      "Hipertrofia",
				Idade:         27,
				PesoAtualKg:   84,
				AlturaM:       1.78,
				ProgressoMeta: ProgressoMeta{Semana: 68, Meta: 100},
				Marcadores:    []string{"Peitoral", "Tríceps", "Mobilidade de ombros"},
			},
			{
				ID:            "a2",
				PersonalID:    "p1",
				ProfileID:     "p3",
				Objetivo:      "Condicionamento",
				Idade:         31,
				PesoAtualKg:   64,
				AlturaM:       1.65,
				ProgressoMeta: ProgressoMeta{Semana: 54, Meta: 90},
				Marcadores:    []string{"Core", "Resistência", "Potência"},
			},
			{
				ID:            "a3",
				PersonalID:    "p1",
				ProfileID:     "p4",
				Objetivo:      "Performance",
				Idade:         35,
				PesoAtualKg:   58,
				AlturaM:       1.7,
				ProgressoMeta: ProgressoMeta{Semana: 72, Meta: 100},
				Marcadores:    []string{"Mobilidade", "Estabilidade", "Força funcional"},
			},
		},
		Exercicios: []Exercicio{
			{
				ID:          "e1",
				Nome:        "Supino Reto",
				Grupo:       "Peito",
				Equipamento: "Banco + Barra",
				Imagem:      "/exercicios/supino.svg",
				Video:       "/videos/supino.json",
				Foco:        "Força máxima de peitoral",
			},
			{
				ID:          "e2",
				Nome:        "Agachamento Livre",
				Grupo:       "Pernas",
				Equipamento: "Rack + Barra",
				Imagem:      "/exercicios/agachamento.svg",
				Video:       "/videos/agachamento.json",
				Foco:        "Desenvolvimento de quadríceps e glúteos",
			},
			{
				ID:          "e3",
				Nome:        "Remada Curvada",
				Grupo:       "Costas",
				Equipamento: "Barra Olímpica",
				Imagem:      "/exercicios/remada.svg",
				Video:       "/videos/remada.json",
				Foco:        "Espessura de dorsais",
			},
			{
				ID:          "e4",
				Nome:        "Prancha Dinâmica",
				Grupo:       "Core",
				Equipamento: "Peso corporal",
				Imagem:      "/exercicios/prancha.svg",
				Video:       "/videos/prancha.json",
				Foco:        "Estabilidade total de core",
			},
			{
				ID:          "e5",
				Nome:        "Bike Sprint",
				Grupo:       "Cardio",
				Equipamento: "Bike Ergométrica",
				Imagem:      "/exercicios/bike.svg",
				Video:       "/videos/bike.json",
				Foco:        "Condicionamento metabólico",
			},
		},
		Treinos: []Treino{
			{
				ID:         "t1",
				AlunoID:    "a1",
				PersonalID: "p1",
				Nome:       "Treino do Dia - Peitoral & Tríceps",
				DiaSemana:  weekDay(0),
				Descricao:  "Sessão de força com foco em peitoral dominante.",
				Objetivo:   "Aumentar carga em 5% nas próximas 4 semanas.",
			},
			{
				ID:         "t2",
				AlunoID:    "a2",
				PersonalID: "p1",
				Nome:       "Funcional HIIT",
				DiaSemana:  weekDay(1),
				Descricao:  "Circuito metabólico focado em condicionamento.",
				Objetivo:   "Melhorar VO2 máx em 8%.",
			},
			{
				ID:         "t3",
				AlunoID:    "a3",
				PersonalID: "p1",
				Nome:       "Mobilidade + Força",
				DiaSemana:  weekDay(2),
				Descricao:  "Controle motor e estabilidade articular.",
				Objetivo:   "Aprimorar padrões de movimento para performance esportiva.",
			},
		},
		TreinosExercicios: []TreinoExercicio{
			{
				ID:          "te1",
				TreinoID:    "t1",
				ExercicioID: "e1",
				Series:      4,
				Repeticoes:  "10",
				DescansoS:   60,
				CargaKg:     floatPtr(48),
				Order:       1,
				Intensidade: "Zona 4",
			},
			{
				ID:          "te2",
				TreinoID:    "t1",
				ExercicioID: "e3",
				Series:      3,
				Repeticoes:  "12",
				DescansoS:   50,
				CargaKg:     floatPtr(40),
				Order:       2,
				Intensidade: "Zona 3",
			},
			{
				ID:          "te3",
				TreinoID:    "t1",
				ExercicioID: "e4",
				Series:      3,
				Repeticoes:  "45s",
				DescansoS:   45,
				Order:       3,
				Intensidade: "Zona 2",
			},
			{
				ID:          "te4",
				TreinoID:    "t2",
				ExercicioID: "e5",
				Series:      5,
				Repeticoes:  "30s",
				DescansoS:   30,
				Order:       1,
				Intensidade: "Zona 5",
			},
			{
				ID:          "te5",
				TreinoID:    "t3",
				ExercicioID: "e2",
				Series:      4,
				Repeticoes:  "8",
				DescansoS:   90,
				CargaKg:     floatPtr(35),
				Order:       1,
				Intensidade: "Zona 3",
			},
		},
		Medidas: []Medida{
			{
				ID:                "m1",
				AlunoID:           "a1",
				CreatedAt:         monthsAgo(2, 5),
				PesoKg:            85.2,
				AlturaCm:          178,
				GorduraPercentual: floatPtr(19.8),
				BracoCm:           floatPtr(39),
				CinturaCm:         floatPtr(87),
				QuadrilCm:         floatPtr(101),
			},
			{
				ID:                "m2",
				AlunoID:           "a1",
				CreatedAt:         monthsAgo(1, 5),
				PesoKg:            84,
				AlturaCm:          178,
				GorduraPercentual: floatPtr(18.5),
				BracoCm:           floatPtr(40),
				CinturaCm:         floatPtr(85),
				QuadrilCm:         floatPtr(100),
			},
			{
				ID:                "m3",
				AlunoID:           "a2",
				CreatedAt:         monthsAgo(1, 10),
				PesoKg:            64.7,
				AlturaCm:          165,
				GorduraPercentual: floatPtr(24.1),
				CinturaCm:         floatPtr(73),
				QuadrilCm:         floatPtr(97),
			},
		},
		Progresso: []Progresso{
			{
				ID:                "pr1",
				AlunoID:           "a1",
				TreinoID:          "t1",
				TreinoExercicioID: "te1",
				Data:              daysAgo(7),
				Metricas: ProgressoMetricas{
					SeriesConcluidas: 4,
					RepeticoesTotais: 40,
					CargaTotalKg:     1920,
				},
				Observacoes: "Excelente estabilidade na última série.",
			},
			{
				ID:                "pr2",
				AlunoID:           "a1",
				TreinoID:          "t1",
				TreinoExercicioID: "te1",
				Data:              daysAgo(3),
				Metricas: ProgressoMetricas{
					SeriesConcluidas: 4,
					RepeticoesTotais: 40,
					CargaTotalKg:     1968,
				},
				Observacoes: "Carga aumentada com técnica sólida.",
			},
			{
				ID:                "pr3",
				AlunoID:           "a2",
				TreinoID:          "t2",
				TreinoExercicioID: "te4",
				Data:              daysAgo(2),
				Metricas: ProgressoMetricas{
					SeriesConcluidas: 5,
					TempoTotalS:      240,
				},
				Observacoes: "Melhor controle de respiração entre sprints.",
			},
		},
		Feedback: []Feedback{
			{
				ID:                "fb1",
				AlunoID:           "a1",
				TreinoID:          "t1",
				TreinoExercicioID: "te2",
				Mensagem:          "Remada curvada ficou intensa, manter descanso de 50s.",
				Avaliacao:         5,
				CreatedAt:         daysAgo(3),
			},
			{
				ID:                "fb2",
				AlunoID:           "a2",
				TreinoID:          "t2",
				TreinoExercicioID: "te4",
				Mensagem:          "Pronto para aumentar intensidade da bike sprint.",
				Avaliacao:         4,
				CreatedAt:         daysAgo(2),
			},
		},
		VideosCorrecao: []VideoCorrecao{
			{
				ID:                "vc1",
				AlunoID:           "a1",
				TreinoExercicioID: "te1",
				VideoURL:          "/videos/supino-correcao.json",
				ThumbnailURL:      "/exercicios/supino.svg",
				Comentario:        "Ajustar retração escapular para manter estabilidade.",
				EnviadoEm:         daysAgo(1),
			},
			{
				ID:                "vc2",
				AlunoID:           "a2",
				TreinoExercicioID: "te4",
				VideoURL:          "/videos/bike.json",
				ThumbnailURL:      "/exercicios/bike.svg",
				Comentario:        "Controlar a cadência final para reduzir fadiga.",
				EnviadoEm:         daysAgo(1),
			},
		},
	}
}
