package remote

import (
	"reflect"
	"testing"
)

func TestBuildInsert(t *testing.T) {
	query, args := buildInsert(TablePosts, Row{
		"title":   "Launch",
		"user_id": "u1",
		"content": nil,
	})

	want := `INSERT INTO "posts" ("content", "title", "user_id") VALUES ($1, $2, $3) RETURNING *`
	if query != want {
		t.Fatalf("query:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{nil, "Launch", "u1"}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildUpdateSkipsOwnerColumns(t *testing.T) {
	query, args := buildUpdate(TableCampaigns, "u1", "c1", Row{
		"name":    "Spring",
		"id":      "ignored",
		"user_id": "ignored",
		"color":   "#fff000",
	})

	want := `UPDATE "campaigns" SET "color" = $1, "name" = $2 WHERE id = $3 AND user_id = $4`
	if query != want {
		t.Fatalf("query:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"#fff000", "Spring", "c1", "u1"}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildSelectAndDelete(t *testing.T) {
	if got := buildSelect(TableStudios, "created_at DESC"); got != `SELECT * FROM "design_studios" WHERE user_id = $1 ORDER BY created_at DESC` {
		t.Fatalf("unexpected select %s", got)
	}
	if got := buildDelete(TableMediaItems); got != `DELETE FROM "media_items" WHERE id = $1 AND user_id = $2 RETURNING *` {
		t.Fatalf("unexpected delete %s", got)
	}
}
