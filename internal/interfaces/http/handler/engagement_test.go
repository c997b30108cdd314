package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	engagementapp "github.com/marketloop/backend/internal/application/engagement"
	rankingapp "github.com/marketloop/backend/internal/application/ranking"
	"github.com/marketloop/backend/internal/domain/ranking"
)

type engagementTestEnv struct {
	repo      *fakeEngagementRepo
	scoreRepo *fakeScoreRepo
	service   *engagementapp.EngagementService
}

func newEngagementTestEnv() *engagementTestEnv {
	repo := newFakeEngagementRepo()
	scoreRepo := newFakeScoreRepo()
	rankingService := rankingapp.NewRankingService(scoreRepo, zap.NewNop())
	return &engagementTestEnv{
		repo:      repo,
		scoreRepo: scoreRepo,
		service:   engagementapp.NewEngagementService(repo, rankingService, zap.NewNop()),
	}
}

func (env *engagementTestEnv) router(auth gin.HandlerFunc) *gin.Engine {
	h := NewEngagementHandler(env.service, auth, zap.NewNop())
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func (env *engagementTestEnv) contentScore(t *testing.T, userID uuid.UUID) float64 {
	t.Helper()
	entry, err := env.scoreRepo.FindByUserAndCategory(context.Background(), userID, ranking.CategoryContent)
	require.NoError(t, err)
	if entry == nil {
		return 0
	}
	return entry.Score
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestEngagementHandlerReact(t *testing.T) {
	actorID := uuid.New()
	ownerID := uuid.New()
	contentID := uuid.New()

	t.Run("reacting scores the owner", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))

		w := postJSON(t, router, "/api/v1/contents/"+contentID.String()+"/reactions",
			`{"content_kind":"post","owner_id":"`+ownerID.String()+`"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"reaction"`)
		assert.InDelta(t, 1.0, env.contentScore(t, ownerID), 0.001)
	})

	t.Run("second reaction conflicts", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))
		path := "/api/v1/contents/" + contentID.String() + "/reactions"
		body := `{"content_kind":"post","owner_id":"` + ownerID.String() + `"}`

		require.Equal(t, http.StatusCreated, postJSON(t, router, path, body).Code)

		w := postJSON(t, router, path, body)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_EXISTS")
		assert.InDelta(t, 1.0, env.contentScore(t, ownerID), 0.001)
	})

	t.Run("unreact reverses the score", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))
		path := "/api/v1/contents/" + contentID.String() + "/reactions"
		body := `{"content_kind":"post","owner_id":"` + ownerID.String() + `"}`
		require.Equal(t, http.StatusCreated, postJSON(t, router, path, body).Code)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, path, bytes.NewBufferString(`{"owner_id":"`+ownerID.String()+`"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.InDelta(t, 0.0, env.contentScore(t, ownerID), 0.001)
	})

	t.Run("unreact without a reaction is 404", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/contents/"+contentID.String()+"/reactions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEngagementHandlerComment(t *testing.T) {
	actorID := uuid.New()
	ownerID := uuid.New()
	contentID := uuid.New()

	t.Run("commenting scores the owner", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))

		w := postJSON(t, router, "/api/v1/contents/"+contentID.String()+"/comments",
			`{"content_kind":"post","body":"Nice lamp!","owner_id":"`+ownerID.String()+`"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Nice lamp!")
		assert.InDelta(t, 3.0, env.contentScore(t, ownerID), 0.001)
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))

		w := postJSON(t, router, "/api/v1/contents/"+contentID.String()+"/comments",
			`{"content_kind":"post","body":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("author deletes own comment and score reverses", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))

		w := postJSON(t, router, "/api/v1/contents/"+contentID.String()+"/comments",
			`{"content_kind":"post","body":"Nice!","owner_id":"`+ownerID.String()+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		commentID := data["id"].(string)

		dw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+commentID,
			bytes.NewBufferString(`{"owner_id":"`+ownerID.String()+`"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(dw, req)

		assert.Equal(t, http.StatusNoContent, dw.Code)
		assert.InDelta(t, 0.0, env.contentScore(t, ownerID), 0.001)
	})

	t.Run("stranger cannot delete a comment", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))

		w := postJSON(t, router, "/api/v1/contents/"+contentID.String()+"/comments",
			`{"content_kind":"post","body":"Nice!"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		commentID := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

		strangerRouter := env.router(authAs(uuid.New(), "User"))
		dw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+commentID, nil)
		strangerRouter.ServeHTTP(dw, req)

		assert.Equal(t, http.StatusForbidden, dw.Code)
	})

	t.Run("replies thread under the parent", func(t *testing.T) {
		env := newEngagementTestEnv()
		router := env.router(authAs(actorID, "User"))

		w := postJSON(t, router, "/api/v1/contents/"+contentID.String()+"/comments",
			`{"content_kind":"post","body":"parent"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		parentID := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

		w = postJSON(t, router, "/api/v1/contents/"+contentID.String()+"/comments",
			`{"content_kind":"post","body":"child","parent_id":"`+parentID+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		lw := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/comments/"+parentID+"/replies", nil)
		router.ServeHTTP(lw, req)

		assert.Equal(t, http.StatusOK, lw.Code)
		resp := decodeResponse(t, lw)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
		assert.Contains(t, lw.Body.String(), "child")
	})
}

func TestEngagementHandlerReshare(t *testing.T) {
	actorID := uuid.New()
	ownerID := uuid.New()
	contentID := uuid.New()

	env := newEngagementTestEnv()
	router := env.router(authAs(actorID, "User"))
	path := "/api/v1/contents/" + contentID.String() + "/reshares"
	body := `{"content_kind":"post","owner_id":"` + ownerID.String() + `"}`

	require.Equal(t, http.StatusCreated, postJSON(t, router, path, body).Code)
	require.Equal(t, http.StatusCreated, postJSON(t, router, path, body).Code)

	assert.InDelta(t, 10.0, env.contentScore(t, ownerID), 0.001)
}

func TestEngagementHandlerCountsAndLists(t *testing.T) {
	actorID := uuid.New()
	contentID := uuid.New()

	env := newEngagementTestEnv()
	router := env.router(authAs(actorID, "User"))
	base := "/api/v1/contents/" + contentID.String()

	require.Equal(t, http.StatusCreated, postJSON(t, router, base+"/reactions", `{"content_kind":"post"}`).Code)
	require.Equal(t, http.StatusCreated, postJSON(t, router, base+"/comments", `{"content_kind":"post","body":"one"}`).Code)
	require.Equal(t, http.StatusCreated, postJSON(t, router, base+"/comments", `{"content_kind":"post","body":"two"}`).Code)
	require.Equal(t, http.StatusCreated, postJSON(t, router, base+"/reshares", `{"content_kind":"post"}`).Code)

	t.Run("counts are grouped by kind", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, base+"/counts", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"reactions":1`)
		assert.Contains(t, w.Body.String(), `"comments":2`)
		assert.Contains(t, w.Body.String(), `"reshares":1`)
		assert.Contains(t, w.Body.String(), `"total":4`)
	})

	t.Run("comment listing is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, base+"/comments", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
	})
}
