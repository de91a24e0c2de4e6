package remote

import (
	"context"
	"fmt"

	"github.com/maheshrc27/socialflow/internal/auth"
	"github.com/maheshrc27/socialflow/internal/store"
)

// Table is the remote EntityStore for one entity type. Every call is scoped
// to the principal carried by ctx.
type Table[E store.Entity[E]] struct {
	gw    Gateway
	codec codec[E]
}

func newTable[E store.Entity[E]](gw Gateway, c codec[E]) *Table[E] {
	return &Table[E]{gw: gw, codec: c}
}

func (t *Table[E]) List(ctx context.Context) ([]E, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := t.gw.Select(ctx, t.codec.table, userID, t.codec.orderBy)
	if err != nil {
		return nil, err
	}

	records := make([]E, 0, len(rows))
	for _, row := range rows {
		e, err := t.codec.decode(row)
		if err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", t.codec.kind, idOf(row), err)
		}
		records = append(records, e)
	}
	return records, nil
}

func (t *Table[E]) Create(ctx context.Context, e E) (E, error) {
	userID, err := principal(ctx)
	if err != nil {
		return e, err
	}

	row := t.codec.encode(e)
	row["user_id"] = userID
	inserted, err := t.gw.Insert(ctx, t.codec.table, row)
	if err != nil {
		return e, err
	}
	return e.WithID(idOf(inserted)), nil
}

func (t *Table[E]) Update(ctx context.Context, e E) (E, error) {
	userID, err := principal(ctx)
	if err != nil {
		return e, err
	}

	found, err := t.gw.Update(ctx, t.codec.table, userID, e.EntityID(), t.codec.encode(e))
	if err != nil {
		return e, err
	}
	if !found {
		return e, store.NotFound(t.codec.kind, e.EntityID())
	}
	return e, nil
}

func (t *Table[E]) Delete(ctx context.Context, id string) error {
	_, err := t.remove(ctx, id)
	return err
}

func (t *Table[E]) remove(ctx context.Context, id string) (Row, error) {
	userID, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	row, err := t.gw.Delete(ctx, t.codec.table, userID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, store.NotFound(t.codec.kind, id)
	}
	return row, nil
}

func principal(ctx context.Context) (string, error) {
	userID, ok := auth.PrincipalID(ctx)
	if !ok {
		return "", store.ErrAuthRequired
	}
	return userID, nil
}
