package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/maheshrc27/socialflow/internal/store"
)

// Row is one table row keyed by snake_case column name. Unset optional
// fields are present with a nil value.
type Row map[string]any

// Gateway performs owner-scoped row operations on the relational backend.
type Gateway interface {
	Select(ctx context.Context, table, userID, orderBy string) ([]Row, error)
	// Insert writes row and returns the stored row, including its id.
	Insert(ctx context.Context, table string, row Row) (Row, error)
	// Update reports false when no row matched id for userID.
	Update(ctx context.Context, table, userID, id string, row Row) (bool, error)
	// Delete returns the removed row, or nil when nothing matched.
	Delete(ctx context.Context, table, userID, id string) (Row, error)
}

type sqlGateway struct {
	db *sql.DB
}

func NewSQLGateway(db *sql.DB) Gateway {
	return &sqlGateway{db: db}
}

func (g *sqlGateway) Select(ctx context.Context, table, userID, orderBy string) ([]Row, error) {
	rows, err := g.db.QueryContext(ctx, buildSelect(table, orderBy), userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, store.Unavailable("select "+table, err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		slog.Info(err.Error())
		return nil, store.Unavailable("select "+table, err)
	}
	return result, nil
}

func (g *sqlGateway) Insert(ctx context.Context, table string, row Row) (Row, error) {
	query, args := buildInsert(table, row)
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, store.Unavailable("insert "+table, err)
	}
	defer rows.Close()

	inserted, err := scanRows(rows)
	if err != nil {
		slog.Info(err.Error())
		return nil, store.Unavailable("insert "+table, err)
	}
	if len(inserted) == 0 {
		return nil, store.Unavailable("insert "+table, errors.New("no row returned"))
	}
	return inserted[0], nil
}

func (g *sqlGateway) Update(ctx context.Context, table, userID, id string, row Row) (bool, error) {
	query, args := buildUpdate(table, userID, id, row)
	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return false, nil
		}
		slog.Info(err.Error())
		return false, store.Unavailable("update "+table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, store.Unavailable("update "+table, err)
	}
	return n > 0, nil
}

func (g *sqlGateway) Delete(ctx context.Context, table, userID, id string) (Row, error) {
	rows, err := g.db.QueryContext(ctx, buildDelete(table), id, userID)
	if err != nil {
		if isInvalidID(err) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, store.Unavailable("delete "+table, err)
	}
	defer rows.Close()

	deleted, err := scanRows(rows)
	if err != nil {
		slog.Info(err.Error())
		return nil, store.Unavailable("delete "+table, err)
	}
	if len(deleted) == 0 {
		return nil, nil
	}
	return deleted[0], nil
}

func buildSelect(table, orderBy string) string {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE user_id = $1`, pq.QuoteIdentifier(table))
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	return query
}

func buildInsert(table string, row Row) (string, []any) {
	columns := sortedColumns(row, nil)
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING *`,
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	return query, args
}

func buildUpdate(table, userID, id string, row Row) (string, []any) {
	columns := sortedColumns(row, map[string]bool{"id": true, "user_id": true})
	sets := make([]string, len(columns))
	args := make([]any, 0, len(columns)+2)
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), i+1)
		args = append(args, row[col])
	}
	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d AND user_id = $%d`,
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), len(columns)+1, len(columns)+2)
	return query, args
}

func buildDelete(table string) string {
	return fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2 RETURNING *`, pq.QuoteIdentifier(table))
}

func sortedColumns(row Row, skip map[string]bool) []string {
	columns := make([]string, 0, len(row))
	for col := range row {
		if skip[col] {
			continue
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// isInvalidID matches ids that cannot be cast to the uuid key type; such a
// target cannot exist.
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 22P02 = invalid_text_representation
		return pqErr.Code == "22P02"
	}
	return false
}
