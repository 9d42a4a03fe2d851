package adminquery

import (
	"strings"
	"testing"
)

func TestOrdersDefaultPage(t *testing.T) {
	sql, args, err := Orders(OrderFilter{})
	if err != nil {
		t.Fatalf("Orders error: %v", err)
	}
	if strings.Contains(sql, "WHERE") {
		t.Fatalf("unfiltered query must not have WHERE: %s", sql)
	}
	if !strings.Contains(sql, "LIMIT 50") {
		t.Fatalf("expected default limit 50: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %#v", args)
	}
}

func TestOrdersCombinesFilters(t *testing.T) {
	sql, args, err := Orders(OrderFilter{
		Status:   "pending",
		Priority: "urgent",
		UserID:   "user-1",
		Page:     Page{Limit: 10, Offset: 20},
	})
	if err != nil {
		t.Fatalf("Orders error: %v", err)
	}
	for _, fragment := range []string{"status = $1", "priority = $2", "user_id = $3", "LIMIT 10", "OFFSET 20"} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("missing %q in: %s", fragment, sql)
		}
	}
	if len(args) != 3 || args[0] != "pending" || args[1] != "urgent" || args[2] != "user-1" {
		t.Fatalf("args mismatch: %#v", args)
	}
}

func TestUsersFilter(t *testing.T) {
	sql, args, err := Users(UserFilter{AccountID: "acc-1", Role: "admin"})
	if err != nil {
		t.Fatalf("Users error: %v", err)
	}
	if !strings.Contains(sql, "account_id = $1") || !strings.Contains(sql, "role = $2") {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 2 {
		t.Fatalf("args mismatch: %#v", args)
	}
}

func TestTransactionsFilter(t *testing.T) {
	sql, args, err := Transactions(TransactionFilter{TeamID: "team-1", Type: "admin_adjustment"})
	if err != nil {
		t.Fatalf("Transactions error: %v", err)
	}
	if !strings.Contains(sql, "team_id = $1") || !strings.Contains(sql, "tx_type = $2") {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 2 {
		t.Fatalf("args mismatch: %#v", args)
	}
}

func TestPageCapsLimit(t *testing.T) {
	sql, _, err := Orders(OrderFilter{Page: Page{Limit: 10000}})
	if err != nil {
		t.Fatalf("Orders error: %v", err)
	}
	if !strings.Contains(sql, "LIMIT 50") {
		t.Fatalf("expected limit cap: %s", sql)
	}
}
