package ginx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
)

type bindTarget struct {
	Limit int `form:"limit" binding:"omitempty,max=100"`
}

func TestBadRequestWithValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=500", nil)

	var target bindTarget
	err := c.ShouldBindQuery(&target)
	if err == nil {
		t.Fatal("expected binding error")
	}
	BadRequestWithValidation(c, err)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusBadRequest || resp.Meta.Code != http.StatusBadRequest {
		t.Fatalf("status got %d/%d", w.Code, resp.Meta.Code)
	}
	if len(resp.Meta.Details) != 1 || resp.Meta.Details[0].Path != "limit" {
		t.Fatalf("details got %+v", resp.Meta.Details)
	}
	if resp.Meta.Details[0].Info != "limit must be at most 100" {
		t.Fatalf("info got %q", resp.Meta.Details[0].Info)
	}
}

func TestRequestFieldName(t *testing.T) {
	typ := reflect.TypeOf(struct {
		OrderStatus string `json:"orderStatus,omitempty"`
		UserID      string `form:"userId"`
		Skipped     string `json:"-" form:"skipped"`
		Plain       string
	}{})

	want := []string{"orderStatus", "userId", "skipped", "Plain"}
	for i, w := range want {
		if got := requestFieldName(typ.Field(i)); got != w {
			t.Fatalf("field %d: got %q want %q", i, got, w)
		}
	}
}

func TestWaiting(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Waiting(c, "ord_1", "/api/v1/admin/orders/ord_1")

	var resp struct {
		Meta Meta        `json:"meta"`
		Data WaitingData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusOK || resp.Meta.Code != CodeWaiting || resp.Data.PollURL == "" {
		t.Fatalf("unexpected waiting response: %d %+v", w.Code, resp)
	}
}
