package mockdb

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/treinalab/treinalab/internal/telemetry/metrics"
	"github.com/treinalab/treinalab/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// id prefixes used when an insert payload arrives without an id, matching
// the identifiers of the seed dataset (a1, te1, vc1, ...).
var tableIDPrefixes = map[string]string{
	TableUsers:             "u",
	TableProfiles:          "p",
	TableAlunos:            "a",
	TableTreinos:           "t",
	TableExercicios:        "e",
	TableTreinosExercicios: "te",
	TableMedidas:           "m",
	TableProgresso:         "pr",
	TableFeedback:          "fb",
	TableVideosCorrecao:    "vc",
}

func validTable(table string) bool {
	_, ok := (&tableSet{}).rows(table)
	return ok
}

// envelope is the wire shape of every db response: data and error, both
// always present, mirroring the in-process query result contract.
type envelope struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

type queryRequest struct {
	Select []Relation       `json:"select,omitempty"`
	Eq     map[string]any   `json:"eq,omitempty"`
	In     map[string][]any `json:"in,omitempty"`
	Limit  *int             `json:"limit,omitempty"`
	Single bool             `json:"single,omitempty"`
}

type mutationRequest struct {
	Rows []json.RawMessage `json:"rows,omitempty"`
	Set  map[string]any    `json:"set,omitempty"`
	Eq   map[string]any    `json:"eq,omitempty"`
}

// Handler exposes the query builder over JSON HTTP, keeping the same
// request/response envelope a real remote database client would have.
type Handler struct {
	store   *Store
	metrics *metrics.Manager
}

func NewHandler(store *Store, metrics *metrics.Manager) *Handler {
	return &Handler{
		store:   store,
		metrics: metrics,
	}
}

func (handler *Handler) countQuery(op, table string) {
	handler.metrics.CounterQueries.With(
		prometheus.Labels{"op": op, "table": table},
	).Inc()
}

func (handler *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("query %s: decode request: %s", table, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	query := handler.store.From(table).Select(req.Select...)
	for column, value := range req.Eq {
		query = query.Eq(column, value)
	}
	for column, values := range req.In {
		query = query.In(column, values...)
	}
	if req.Limit != nil {
		query = query.Limit(*req.Limit)
	}
	if req.Single {
		query = query.Single()
	}

	res := query.Exec(r.Context())
	handler.countQuery("select", table)

	if req.Single {
		var data any
		if res.Row != nil {
			data = res.Row
		}
		pkg.WriteJSONResponse(w, envelope{Data: data, Error: res.Err})
		return
	}
	handler.writeRows(w, res)
}

func (handler *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("insert into %s: decode request: %s", table, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !validTable(table) {
		pkg.WriteJSONResponse(w, envelope{Error: errorf("Tabela %s não encontrada.", table)})
		return
	}

	rows := make([]Row, 0, len(req.Rows))
	for _, raw := range req.Rows {
		row, err := handler.decodePayloadRow(table, raw)
		if err != nil {
			log.Errorf("insert into %s: decode row: %s", table, err)
			pkg.WriteJSONResponse(w, envelope{Error: errorf("Linha inválida para a tabela %s.", table)})
			return
		}
		rows = append(rows, row)
	}

	res := handler.store.From(table).Insert(rows...).Exec(r.Context())
	handler.countQuery("insert", table)
	handler.writeRows(w, res)
}

// decodePayloadRow fills a missing id before decoding, so clients can rely
// on the server to produce seed-style identifiers.
func (handler *Handler) decodePayloadRow(table string, raw json.RawMessage) (Row, error) {
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, err
	}
	if id, _ := asMap["id"].(string); id == "" {
		asMap["id"] = pkg.NewID(tableIDPrefixes[table])
	}
	withID, err := json.Marshal(asMap)
	if err != nil {
		return nil, err
	}
	return decodeRow(table, withID)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update %s: decode request: %s", table, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	query := handler.store.From(table).Update(req.Set)
	for column, value := range req.Eq {
		query = query.Eq(column, value)
	}

	res := query.Exec(r.Context())
	handler.countQuery("update", table)
	handler.writeRows(w, res)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	var req mutationRequest
	// delete may come without a body: no filters, clear the table
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Errorf("delete from %s: decode request: %s", table, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	query := handler.store.From(table).Delete()
	for column, value := range req.Eq {
		query = query.Eq(column, value)
	}

	res := query.Exec(r.Context())
	handler.countQuery("delete", table)
	handler.writeRows(w, res)
}

// HandleReset drops the persisted snapshot and re-seeds the cache.
func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := handler.store.Reset(r.Context()); err != nil {
		log.Errorf("reset mock db: %s", err)
		pkg.WriteJSONResponse(w, envelope{Error: errorf("Falha ao reiniciar o banco de dados.")})
		return
	}
	log.Warnln("mock db reset, next access re-seeds from the demo dataset")
	pkg.WriteJSONResponse(w, envelope{Data: "ok"})
}

func (handler *Handler) writeRows(w http.ResponseWriter, res Result) {
	var data any
	if res.Err == nil {
		data = res.Rows
	}
	pkg.WriteJSONResponse(w, envelope{Data: data, Error: res.Err})
}
