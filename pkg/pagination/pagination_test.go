package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseDefaults(t *testing.T) {
	p := Parse(contextWithQuery(""))
	if p.Page != DefaultPage || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Fatalf("defaults: got %+v", p)
	}
}

func TestParseClampsLimit(t *testing.T) {
	p := Parse(contextWithQuery("page=3&limit=500"))
	if p.Limit != MaxLimit {
		t.Fatalf("limit should clamp to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 2*MaxLimit {
		t.Fatalf("offset: got %d want %d", p.Offset, 2*MaxLimit)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	p := Parse(contextWithQuery("page=-1&limit=abc"))
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("invalid input should fall back to defaults, got %+v", p)
	}
}

func TestBulk(t *testing.T) {
	p := Bulk()
	if p.Limit != BulkLimit || p.Page != 1 || p.Offset != 0 {
		t.Fatalf("bulk params: got %+v", p)
	}
}
