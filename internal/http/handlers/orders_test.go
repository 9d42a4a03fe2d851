package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"translationportal/internal/sqlinline"
)

func TestOrdersCreateDebitsComputedCredits(t *testing.T) {
	var gotArgs []any
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		if query != sqlinline.QCreateOrderWithDebit {
			t.Fatalf("unexpected query: %s", query)
		}
		gotArgs = args
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*string) = "order-1"
			*dest[1].(*string) = "pending"
			*dest[2].(*time.Time) = time.Now()
			return nil
		})
	}}
	app, _ := newTestApp(sql)

	payload := `{
		"file_name": "contract.docx",
		"file_format": "docx",
		"file_size": 9500,
		"word_count": 200,
		"char_count": 1000,
		"subject": "legal",
		"source_language": "en",
		"target_languages": ["fr", "de"],
		"workflow": "tier1"
	}`
	req := asClient(httptest.NewRequest("POST", "/api/orders", strings.NewReader(payload)), "user-1")
	rr := httptest.NewRecorder()
	app.OrdersCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	// 1000 chars x 2 languages x 1 credit/char.
	if gotArgs[1] != int64(2000) {
		t.Fatalf("debited credits = %v, want 2000", gotArgs[1])
	}
	if gotArgs[13] != "£2.00" {
		t.Fatalf("total cost = %v, want £2.00", gotArgs[13])
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["credits_required"] != float64(2000) || body["total_cost"] != "£2.00" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestOrdersCreateInsufficientCredits(t *testing.T) {
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		return SimpleRow{} // debit guard matched nothing
	}}
	app, _ := newTestApp(sql)

	payload := `{
		"file_name": "deck.pptx",
		"file_format": "pptx",
		"char_count": 50000,
		"source_language": "en",
		"target_languages": ["ja"],
		"workflow": "tier3"
	}`
	req := asClient(httptest.NewRequest("POST", "/api/orders", strings.NewReader(payload)), "user-1")
	rr := httptest.NewRecorder()
	app.OrdersCreate(rr, req)

	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402: %s", rr.Code, rr.Body.String())
	}
}

func TestOrdersCreateRejectsUnknownWorkflow(t *testing.T) {
	app, _ := newTestApp(&fakeSQL{})
	payload := `{"file_name":"a.txt","char_count":10,"source_language":"en","target_languages":["fr"],"workflow":"tier9"}`
	req := asClient(httptest.NewRequest("POST", "/api/orders", strings.NewReader(payload)), "user-1")
	rr := httptest.NewRecorder()
	app.OrdersCreate(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestOrdersPatchRejectsBackwardTransitionForClient(t *testing.T) {
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		if query != sqlinline.QSelectOrderStatus {
			t.Fatalf("unexpected query: %s", query)
		}
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*string) = "lqa-in-progress"
			*dest[1].(*string) = "user-1"
			return nil
		})
	}}
	app, _ := newTestApp(sql)

	req := asClient(httptest.NewRequest("PATCH", "/api/orders/order-1", strings.NewReader(`{"status":"pending"}`)), "user-1")
	req = withURLParam(req, "orderID", "order-1")
	rr := httptest.NewRecorder()
	app.OrdersPatch(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rr.Code, rr.Body.String())
	}
}

func TestOrdersPatchAdminMayRewind(t *testing.T) {
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		switch query {
		case sqlinline.QSelectOrderStatus:
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = "complete"
				*dest[1].(*string) = "user-1"
				return nil
			})
		case sqlinline.QPatchOrder:
			if args[1] != (*string)(nil) {
				t.Fatalf("admin patch must not be owner-scoped, got %v", args[1])
			}
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = "order-1"
				*dest[1].(*string) = "lqa-in-progress"
				*dest[2].(*string) = "high"
				*dest[3].(*int) = 60
				*dest[4].(*time.Time) = time.Now()
				return nil
			})
		default:
			t.Fatalf("unexpected query: %s", query)
			return SimpleRow{}
		}
	}}
	app, _ := newTestApp(sql)

	req := asAdmin(httptest.NewRequest("PATCH", "/api/orders/order-1", strings.NewReader(`{"status":"lqa-in-progress"}`)), "admin-1")
	req = withURLParam(req, "orderID", "order-1")
	rr := httptest.NewRecorder()
	app.OrdersPatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
}

func orderRowForDownload(status string) SimpleRow {
	return NewSimpleRow(func(dest ...any) error {
		now := time.Now()
		*dest[0].(*string) = "order-1"
		*dest[1].(*string) = "user-1"
		*dest[2].(*string) = "contract.docx"
		*dest[3].(*string) = "docx"
		*dest[4].(*int64) = 9500
		*dest[5].(*int64) = 200
		*dest[6].(*int64) = 1000
		*dest[7].(*int) = 0
		*dest[8].(*string) = "legal"
		*dest[9].(*string) = "en"
		*dest[10].(*[]string) = []string{"fr", "de"}
		*dest[11].(*string) = "tier2"
		*dest[12].(*int64) = 4000
		*dest[13].(*string) = "£4.00"
		*dest[14].(*string) = status
		*dest[15].(*string) = "medium"
		*dest[16].(**time.Time) = nil
		*dest[17].(*int) = 100
		*dest[18].(**string) = nil
		*dest[19].(*time.Time) = now
		*dest[20].(*time.Time) = now
		return nil
	})
}

func TestOrderDownloadRequiresCompletion(t *testing.T) {
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		return orderRowForDownload("translation-in-progress")
	}}
	app, _ := newTestApp(sql)

	req := asClient(httptest.NewRequest("GET", "/api/orders/order-1/download", nil), "user-1")
	req = withURLParam(req, "orderID", "order-1")
	rr := httptest.NewRecorder()
	app.OrderDownload(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
}

func TestOrderDownloadArchivesPerLanguage(t *testing.T) {
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		return orderRowForDownload("complete")
	}}
	app, _ := newTestApp(sql)

	req := asClient(httptest.NewRequest("GET", "/api/orders/order-1/download", nil), "user-1")
	req = withURLParam(req, "orderID", "order-1")
	rr := httptest.NewRecorder()
	app.OrderDownload(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type = %q, want application/zip", ct)
	}
	reader, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a zip archive: %v", err)
	}
	names := map[string]bool{}
	for _, f := range reader.File {
		names[f.Name] = true
	}
	if !names["contract.fr.docx"] || !names["contract.de.docx"] {
		t.Fatalf("archive entries = %v, want one per target language", names)
	}
}
