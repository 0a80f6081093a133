package supabase

import (
	"context"
	"fmt"

	"clementus360/daily-tracker/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// orderColumns is the stable pull order per table.
var orderColumns = map[string]string{
	types.TableTasks:    "task_key",
	types.TableTaskData: "date_key",
	types.TableSettings: "setting_key",
	types.TableComments: "date_key",
	types.TableNotes:    "date_key",
}

// TableStore is the row-level surface of the remote store the syncer needs.
type TableStore interface {
	// Upsert writes rows, resolving conflicts on the comma separated onConflict columns.
	Upsert(ctx context.Context, table string, rows any, onConflict string) error
	// SelectByUser returns the JSON array of every row owned by userID.
	SelectByUser(ctx context.Context, table, userID string) ([]byte, error)
	// Delete removes userID's rows whose column is one of values, narrowed
	// by the exact-match filters in match.
	Delete(ctx context.Context, table, userID string, match map[string]string, column string, values []string) error
}

// ClientSource yields the client to issue a request with, typically one
// carrying the signed-in user's token.
type ClientSource func() (*supabase.Client, error)

// Postgrest implements TableStore over the Supabase REST API.
type Postgrest struct {
	client ClientSource
}

func NewPostgrest(source ClientSource) *Postgrest {
	return &Postgrest{client: source}
}

func (p *Postgrest) Upsert(ctx context.Context, table string, rows any, onConflict string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := p.client()
	if err != nil {
		return err
	}

	_, _, err = client.From(table).
		Upsert(rows, onConflict, "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", table, err)
	}
	return nil
}

func (p *Postgrest) SelectByUser(ctx context.Context, table, userID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := p.client()
	if err != nil {
		return nil, err
	}

	query := client.From(table).
		Select("*", "", false).
		Eq("user_id", userID)
	if col, ok := orderColumns[table]; ok {
		query = query.Order(col, &postgrest.OrderOpts{Ascending: true})
	}
	resp, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	return resp, nil
}

func (p *Postgrest) Delete(ctx context.Context, table, userID string, match map[string]string, column string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := p.client()
	if err != nil {
		return err
	}

	query := client.From(table).
		Delete("minimal", "").
		Eq("user_id", userID)
	for col, v := range match {
		query = query.Eq(col, v)
	}
	_, _, err = query.In(column, values).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}
