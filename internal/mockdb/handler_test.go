package mockdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/treinalab/treinalab/internal/storage"
	"github.com/treinalab/treinalab/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/db/{table}/query", handler.HandleQuery).Methods("POST")
	r.HandleFunc("/db/{table}/rows", handler.HandleInsert).Methods("POST")
	r.HandleFunc("/db/{table}/rows", handler.HandleUpdate).Methods("PUT")
	r.HandleFunc("/db/{table}/rows", handler.HandleDelete).Methods("DELETE")
	r.HandleFunc("/admin/reset", handler.HandleReset).Methods("POST")
	return r
}

func newTestHandler() (*Handler, *Store) {
	store := newTestStore(storage.NewMemoryStore(), nil)
	return NewHandler(store, metrics.NewTestManager()), store
}

func doRequest(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_query(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/exercicios/query", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  []Exercicio `json:"data"`
		Error *Error      `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	assert.Len(t, resp.Data, 5)
}

func TestHandler_queryFilters(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/exercicios/query",
		`{"in": {"grupo": ["Peito", "Costas"]}, "limit": 1}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  []Exercicio `json:"data"`
		Error *Error      `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	assert.Len(t, resp.Data, 1)
}

func TestHandler_querySingle(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/users/query",
		`{"eq": {"id": "u2"}, "single": true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  *User  `json:"data"`
		Error *Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "matheus.alves@teste.com", resp.Data.Email)

	// no match: data null, error null
	rr = doRequest(router, "POST", "/db/users/query",
		`{"eq": {"id": "u999"}, "single": true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestHandler_queryUnknownTable(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/pagamentos/query", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Tabela pagamentos não encontrada.", resp.Error.Message)
}

func TestHandler_queryRelations(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/treinos/query",
		`{"select": ["treinos_exercicios(exercicios)"], "eq": {"id": "t1"}, "single": true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  *TreinoComItens `json:"data"`
		Error *Error          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Data)
	require.Len(t, resp.Data.Itens, 3)
	require.NotNil(t, resp.Data.Itens[0].Exercicio)
	assert.Equal(t, "Supino Reto", resp.Data.Itens[0].Exercicio.Nome)
}

func TestHandler_insert(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/alunos/rows",
		`{"rows": [{"personal_id": "p1", "profile_id": "p3", "objetivo": "Resistência"}]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  []Aluno `json:"data"`
		Error *Error  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.Len(t, resp.Data, 1)

	// a missing id gets generated with the table prefix
	assert.True(t, strings.HasPrefix(resp.Data[0].ID, "a_"))
	assert.Equal(t, "Resistência", resp.Data[0].Objetivo)
}

func TestHandler_insertEmptyRows(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/alunos/rows", `{"rows": []}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "No payload provided for insert.", resp.Error.Message)
}

func TestHandler_update(t *testing.T) {
	handler, store := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "PUT", "/db/treinos_exercicios/rows",
		`{"set": {"series": 6}, "eq": {"id": "te1"}}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  []TreinoExercicio `json:"data"`
		Error *Error            `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 6, resp.Data[0].Series)

	res := store.From(TableTreinosExercicios).Eq("id", "te1").Single().Exec(context.Background())
	require.Nil(t, res.Err)
	assert.Equal(t, 6, res.Row.(TreinoExercicio).Series)
}

func TestHandler_delete(t *testing.T) {
	handler, store := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "DELETE", "/db/feedback/rows", `{"eq": {"id": "fb1"}}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  []Feedback `json:"data"`
		Error *Error     `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "fb1", resp.Data[0].ID)

	res := store.From(TableFeedback).Exec(context.Background())
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 1)
}

func TestHandler_deleteWithoutBody(t *testing.T) {
	handler, store := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "DELETE", "/db/feedback/rows", "")
	require.Equal(t, http.StatusOK, rr.Code)

	res := store.From(TableFeedback).Exec(context.Background())
	require.Nil(t, res.Err)
	assert.Empty(t, res.Rows)
}

func TestHandler_badRequestBody(t *testing.T) {
	handler, _ := newTestHandler()
	router := testRouter(handler)

	rr := doRequest(router, "POST", "/db/alunos/query", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(router, "POST", "/db/alunos/rows", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_reset(t *testing.T) {
	handler, store := newTestHandler()
	router := testRouter(handler)

	res := store.From(TableAlunos).Delete().Eq("id", "a1").Exec(context.Background())
	require.Nil(t, res.Err)

	rr := doRequest(router, "POST", "/admin/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)

	res = store.From(TableAlunos).Exec(context.Background())
	require.Nil(t, res.Err)
	assert.Len(t, res.Rows, 3)
}
