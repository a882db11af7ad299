package mockdb

import (
	"context"
	"fmt"
	"time"
)

// Error is the non-fatal query error carried inside results; the engine
// never panics and never returns Go errors across the boundary.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Result is the outcome of an executed query. Rows carries multi-row reads
// and mutation results; Row carries the coerced single-row read. Err can be
// set alongside Row (multiple rows for single), so callers must always
// check it.
type Result struct {
	Rows []Row
	Row  Row
	Err  *Error
}

type operation int

const (
	opSelect operation = iota
	opInsert
	opUpdate
	opDelete
)

type eqFilter struct {
	column string
	value  any
}

// Query is a chainable builder over one table. Configuration calls return
// the builder; nothing touches data until Exec.
type Query struct {
	store *Store
	table string

	op        operation
	relations []Relation
	filters   []func([]Row) []Row
	eqFilters []eqFilter
	limit     int
	single    bool
	payload   []Row
	patch     map[string]any
}

// Select records the relations to hydrate on read. Calling it after a
// mutating call is a no-op.
func (q *Query) Select(relations ...Relation) *Query {
	if q.op == opSelect {
		q.relations = relations
	}
	return q
}

// Insert switches the builder into insert mode with the given rows.
func (q *Query) Insert(rows ...Row) *Query {
	q.op = opInsert
	q.payload = rows
	return q
}

// Update switches the builder into update mode; the partial payload is
// merged onto every row matching the accumulated equality filters.
func (q *Query) Update(patch map[string]any) *Query {
	q.op = opUpdate
	q.patch = patch
	return q
}

// Delete switches the builder into delete mode; rows matching the
// accumulated equality filters are removed.
func (q *Query) Delete() *Query {
	q.op = opDelete
	return q
}

// Eq adds an equality predicate. Equality predicates also select the target
// rows of update and delete operations.
func (q *Query) Eq(column string, value any) *Query {
	q.eqFilters = append(q.eqFilters, eqFilter{column: column, value: value})
	q.filters = append(q.filters, func(rows []Row) []Row {
		kept := make([]Row, 0, len(rows))
		for _, row := range rows {
			if fieldMatches(row, column, value) {
				kept = append(kept, row)
			}
		}
		return kept
	})
	return q
}

// In adds a set-membership predicate (read operations only).
func (q *Query) In(column string, values ...any) *Query {
	q.filters = append(q.filters, func(rows []Row) []Row {
		kept := make([]Row, 0, len(rows))
		for _, row := range rows {
			for _, value := range values {
				if fieldMatches(row, column, value) {
					kept = append(kept, row)
					break
				}
			}
		}
		return kept
	})
	return q
}

// Limit caps the number of returned rows, applied after policy filtering.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single coerces the read result into one row or nil.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Exec runs the queued operation. The simulated network delay always runs
// first and an Exec in flight cannot be cancelled; the context is only
// threaded through to the storage adapter.
func (q *Query) Exec(ctx context.Context) Result {
	time.Sleep(q.store.opts.Latency)

	q.store.mutex.Lock()
	defer q.store.mutex.Unlock()
	tables := q.store.loadLocked(ctx)

	rows, ok := tables.rows(q.table)
	if !ok {
		return Result{Err: errorf("Tabela %s não encontrada.", q.table)}
	}

	switch q.op {
	case opInsert:
		return q.execInsert(ctx, tables)
	case opUpdate:
		return q.execUpdate(ctx, tables, rows)
	case opDelete:
		return q.execDelete(ctx, tables, rows)
	default:
		return q.execSelect(ctx, tables, rows)
	}
}

func (q *Query) execSelect(ctx context.Context, tables *tableSet, rows []Row) Result {
	results := make([]Row, 0, len(rows))
	for _, row := range rows {
		cloned, err := cloneRow(row)
		if err != nil {
			return Result{Err: errorf("%s", err)}
		}
		results = append(results, cloned)
	}

	for _, filter := range q.filters {
		results = filter(results)
	}

	results = q.store.applyPolicies(ctx, q.table, results, tables)

	results, hydrateErr := hydrate(q.table, results, q.relations, tables)
	if hydrateErr != nil {
		return Result{Err: hydrateErr}
	}

	if q.limit >= 0 && len(results) > q.limit {
		results = results[:q.limit]
	}

	if q.single {
		var first Row
		if len(results) > 0 {
			first = results[0]
		}
		var err *Error
		if len(results) > 1 {
			err = errorf("Multiple rows returned")
		}
		return Result{Row: first, Err: err}
	}

	return Result{Rows: results}
}

func (q *Query) execInsert(ctx context.Context, tables *tableSet) Result {
	if len(q.payload) == 0 {
		return Result{Err: errorf("No payload provided for insert.")}
	}

	inserted := make([]Row, 0, len(q.payload))
	for _, row := range q.payload {
		if row == nil {
			return Result{Err: errorf("No payload provided for insert.")}
		}
		if row.TableName() != q.table {
			return Result{Err: errorf("Linha do tipo %s não pertence à tabela %s.", row.TableName(), q.table)}
		}
		cloned, err := cloneRow(row)
		if err != nil {
			return Result{Err: errorf("%s", err)}
		}
		inserted = append(inserted, cloned)
	}

	if q.store.opts.EnforceWriteAuthorization {
		allowed := q.store.applyPolicies(ctx, q.table, inserted, tables)
		if len(allowed) != len(inserted) {
			return Result{Err: errorf("Operação não autorizada.")}
		}
	}

	current, _ := tables.rows(q.table)
	if err := tables.setRows(q.table, append(current, inserted...)); err != nil {
		return Result{Err: errorf("%s", err)}
	}
	q.store.persistLocked(ctx)

	returned, err := cloneRows(inserted)
	if err != nil {
		return Result{Err: errorf("%s", err)}
	}
	return Result{Rows: returned}
}

func (q *Query) execUpdate(ctx context.Context, tables *tableSet, rows []Row) Result {
	targets := q.mutationTargets(ctx, tables, rows)

	updated := make([]Row, 0)
	replaced := make([]Row, 0, len(rows))
	for _, row := range rows {
		if !targets[row.RowID()] {
			replaced = append(replaced, row)
			continue
		}
		merged, err := mergeRow(row, q.patch)
		if err != nil {
			return Result{Err: errorf("%s", err)}
		}
		replaced = append(replaced, merged)

		cloned, err := cloneRow(merged)
		if err != nil {
			return Result{Err: errorf("%s", err)}
		}
		updated = append(updated, cloned)
	}

	if err := tables.setRows(q.table, replaced); err != nil {
		return Result{Err: errorf("%s", err)}
	}
	q.store.persistLocked(ctx)

	return Result{Rows: updated}
}

func (q *Query) execDelete(ctx context.Context, tables *tableSet, rows []Row) Result {
	targets := q.mutationTargets(ctx, tables, rows)

	deleted := make([]Row, 0)
	remaining := make([]Row, 0, len(rows))
	for _, row := range rows {
		if !targets[row.RowID()] {
			remaining = append(remaining, row)
			continue
		}
		cloned, err := cloneRow(row)
		if err != nil {
			return Result{Err: errorf("%s", err)}
		}
		deleted = append(deleted, cloned)
	}

	if err := tables.setRows(q.table, remaining); err != nil {
		return Result{Err: errorf("%s", err)}
	}
	q.store.persistLocked(ctx)

	return Result{Rows: deleted}
}

// mutationTargets selects the rows an update/delete applies to: all rows
// matching every equality filter, additionally narrowed by the read policy
// when write authorization is enforced.
func (q *Query) mutationTargets(ctx context.Context, tables *tableSet, rows []Row) map[string]bool {
	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if q.matchesEqFilters(row) {
			matched = append(matched, row)
		}
	}

	if q.store.opts.EnforceWriteAuthorization {
		matched = q.store.applyPolicies(ctx, q.table, matched, tables)
	}

	targets := make(map[string]bool, len(matched))
	for _, row := range matched {
		targets[row.RowID()] = true
	}
	return targets
}

func (q *Query) matchesEqFilters(row Row) bool {
	for _, f := range q.eqFilters {
		if !fieldMatches(row, f.column, f.value) {
			return false
		}
	}
	return true
}

func fieldMatches(row Row, column string, value any) bool {
	current, ok := fieldValue(row, column)
	if !ok {
		return false
	}
	return valuesEqual(current, value)
}

func cloneRows(rows []Row) ([]Row, error) {
	cloned := make([]Row, 0, len(rows))
	for _, row := range rows {
		c, err := cloneRow(row)
		if err != nil {
			return nil, err
		}
		cloned = append(cloned, c)
	}
	return cloned, nil
}
