package ez

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"jewellery-backoffice/internal/domain"
	resp "jewellery-backoffice/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.Validation("bad %s", "input"), resp.CodeBadRequest},
		{domain.NotFound("order"), resp.CodeNotFound},
		{domain.Duplicate("dup"), resp.CodeConflict},
		{domain.Unauthorized("no"), resp.CodeUnauthorized},
		{domain.Persistence("db", errors.New("boom")), resp.CodeServerError},
		{fmt.Errorf("wrapped: %w", domain.NotFound("customer")), resp.CodeNotFound},
		{Forbidden("nope"), resp.CodeForbidden},
		{domain.Persistence("list orders", fmt.Errorf("query: %w", context.DeadlineExceeded)), resp.CodeTimeout},
		{errors.New("plain"), resp.CodeServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CodeOf(tc.err), tc.err.Error())
	}
}

func TestFail_HidesInternalDetail(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, zap.New(core), domain.Persistence("create order", errors.New("disk full")))

	var body resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, resp.CodeServerError, body.Code)
	assert.Equal(t, "Internal Server Error", body.Msg)
	assert.Equal(t, resp.CodeServerError, RespCode(c))
	assert.Equal(t, 1, logs.Len())
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createReq struct {
	Name string `json:"name" binding:"required"`
}

type listQ struct {
	PageQuery
	Q string `form:"q"`
}

func TestCrud(t *testing.T) {
	r := gin.New()
	g := r.Group("", func(c *gin.Context) {
		if c.GetHeader("X-User") != "" {
			c.Set(KeyUserID, c.GetHeader("X-User"))
			c.Set(KeyRole, c.GetHeader("X-Role"))
		}
	})
	store := map[string]item{}
	Crud(New(g, nil), CrudConfig[item, createReq, createReq, listQ]{
		Path:  "/items",
		Roles: []string{"admin"},
		Create: func(_ *gin.Context, in *createReq) (*item, error) {
			it := item{ID: fmt.Sprint(len(store) + 1), Name: in.Name}
			store[it.ID] = it
			return &it, nil
		},
		List: func(_ *gin.Context, q *listQ) (any, error) {
			offset, limit := q.Normalize()
			return gin.H{"offset": offset, "limit": limit, "q": q.Q}, nil
		},
		Get: func(_ *gin.Context, id string) (*item, error) {
			it, ok := store[id]
			if !ok {
				return nil, domain.NotFound("item")
			}
			return &it, nil
		},
		Delete: func(_ *gin.Context, id string) error {
			delete(store, id)
			return nil
		},
	})

	do := func(method, path, body, user, role string) resp.Resp {
		rd := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if user != "" {
			req.Header.Set("X-User", user)
			req.Header.Set("X-Role", role)
		}
		r.ServeHTTP(rd, req)
		var out resp.Resp
		require.NoError(t, json.Unmarshal(rd.Body.Bytes(), &out))
		return out
	}

	assert.Equal(t, resp.CodeUnauthorized, do(http.MethodGet, "/items/1", "", "", "").Code)
	assert.Equal(t, resp.CodeForbidden, do(http.MethodGet, "/items/1", "", "u", "staff").Code)
	assert.Equal(t, resp.CodeBadRequest, do(http.MethodPost, "/items", `{}`, "u", "admin").Code)

	created := do(http.MethodPost, "/items", `{"name":"ring"}`, "u", "admin")
	require.Equal(t, resp.CodeOK, created.Code)
	assert.Equal(t, "ring", created.Data.(map[string]any)["name"])

	got := do(http.MethodGet, "/items/1", "", "u", "admin")
	assert.Equal(t, resp.CodeOK, got.Code)
	assert.Equal(t, resp.CodeNotFound, do(http.MethodGet, "/items/9", "", "u", "admin").Code)

	list := do(http.MethodGet, "/items?page=3&size=500&q=x", "", "u", "admin")
	require.Equal(t, resp.CodeOK, list.Code)
	data := list.Data.(map[string]any)
	assert.EqualValues(t, 40, data["offset"], "size out of range falls back to 20")
	assert.EqualValues(t, 20, data["limit"])
	assert.Equal(t, "x", data["q"])

	assert.Equal(t, resp.CodeOK, do(http.MethodDelete, "/items/1", "", "u", "admin").Code)
	assert.Equal(t, resp.CodeNotFound, do(http.MethodGet, "/items/1", "", "u", "admin").Code)

	// Update 未配置则不注册
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/items/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
