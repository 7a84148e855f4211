package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/auth"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db/sqlite"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/observability"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/server"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/storage"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	store   *sqlite.Repository
	tokens  *auth.Tokens
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	tokens := auth.NewTokens("test-jwt-secret", time.Hour)
	handler, h := server.New(server.Deps{
		Store:          store,
		Sessions:       sessions.NewCookieStore([]byte("test-session-secret")),
		Tokens:         tokens,
		Blob:           storage.NewLocal(t.TempDir(), "/uploads"),
		Metrics:        observability.NewMetrics(),
		LoginRateLimit: 100,
	})
	h.Now = func() time.Time { return fixedNow }

	return &testAPI{t: t, handler: handler, store: store, tokens: tokens}
}

// user creates an account directly in the store and returns a bearer token.
func (a *testAPI) user(username string, role models.Role, complete bool) (*models.User, string) {
	a.t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Role:         role,
	}
	if complete {
		u.City = "lahore"
		u.PhoneNumber = "03001234567"
		u.Bio = "Community organizer in Lahore."
	}
	require.NoError(a.t, a.store.CreateUser(context.Background(), u))
	token, err := a.tokens.Issue(u)
	require.NoError(a.t, err)
	return u, token
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func protestBody(start, end time.Time) map[string]any {
	return map[string]any{
		"title":             "Fair electricity bills",
		"description":       "Peaceful sit-in outside the LESCO office.",
		"cause":             "electricity",
		"city":              "lahore",
		"specific_location": "Mall Road",
		"start_datetime":    start,
		"end_datetime":      end,
		// read-only fields are ignored
		"status":      "approved",
		"is_verified": true,
	}
}

func (a *testAPI) createProtest(token string) int64 {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/protests/", token,
		protestBody(fixedNow.Add(48*time.Hour), fixedNow.Add(72*time.Hour)))
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decode[map[string]any](a.t, rec)["id"].(float64))
}

func (a *testAPI) createPost(token string, published bool) int64 {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/awareness/posts/", token, map[string]any{
		"title":        "Your right to assemble",
		"content":      "Article 16 of the Constitution.",
		"category":     "legal_rights",
		"is_published": published,
		"author":       9999,
		"views_count":  500,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decode[map[string]any](a.t, rec)["id"].(float64))
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

func TestCreateProtest_OrganizerWithCompleteProfile(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("ayesha", models.RoleOrganizer, true)

	rec := api.do(http.MethodPost, "/api/protests/", token,
		protestBody(fixedNow.Add(48*time.Hour), fixedNow.Add(72*time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, false, body["is_verified"])
	assert.Equal(t, "03001234567", body["organizer_contact"])
	assert.Equal(t, "ayesha", body["organizer_name"])
	assert.Equal(t, float64(0), body["supporter_count"])
	assert.Equal(t, true, body["is_upcoming"])
}

func TestCreateProtest_RoleUserForbidden(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("bilal", models.RoleUser, true)

	rec := api.do(http.MethodPost, "/api/protests/", token,
		protestBody(fixedNow.Add(48*time.Hour), fixedNow.Add(72*time.Hour)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProtest_IncompleteProfile(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("sana", models.RoleOrganizer, false)

	rec := api.do(http.MethodPost, "/api/protests/", token,
		protestBody(fixedNow.Add(48*time.Hour), fixedNow.Add(72*time.Hour)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]string](t, rec)
	assert.Contains(t, body, "city")
	assert.Contains(t, body, "phone_number")
	assert.Contains(t, body, "bio")
}

func TestCreateProtest_TimeWindow(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("hamza", models.RoleOrganizer, true)

	tests := []struct {
		name       string
		start, end time.Time
		field      string
	}{
		{"start now", fixedNow, fixedNow.Add(time.Hour), "start_datetime"},
		{"start in past", fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour), "start_datetime"},
		{"end equals start", fixedNow.Add(time.Hour), fixedNow.Add(time.Hour), "end_datetime"},
		{"end before start", fixedNow.Add(2 * time.Hour), fixedNow.Add(time.Hour), "end_datetime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/protests/", token, protestBody(tt.start, tt.end))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec), tt.field)
		})
	}
}

func TestCreateProtest_RequiresAuthentication(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/protests/", "",
		protestBody(fixedNow.Add(48*time.Hour), fixedNow.Add(72*time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication credentials were not provided"}`, rec.Body.String())
}

func TestProtestVisibilityAndModeration(t *testing.T) {
	api := newTestAPI(t)
	_, organizer := api.user("ayesha", models.RoleOrganizer, true)
	_, admin := api.user("admin", models.RoleAdmin, false)
	protestID := api.createProtest(organizer)

	// Pending protests are hidden from the list but readable by id.
	rec := api.do(http.MethodGet, "/api/protests/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))

	rec = api.do(http.MethodGet, "/api/protests/"+id(protestID)+"/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[map[string]any](t, rec)
	assert.Equal(t, false, detail["is_supported"])
	assert.Equal(t, float64(1), detail["views_count"])

	rec = api.do(http.MethodPatch, "/api/protests/"+id(protestID)+"/status/", organizer, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPatch, "/api/protests/"+id(protestID)+"/status/", admin, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPatch, "/api/protests/"+id(protestID)+"/status/", admin,
		map[string]string{"status": "approved", "notes": "route agreed with police"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decode[map[string]any](t, rec)
	assert.Equal(t, "approved", approved["status"])
	assert.Equal(t, true, approved["is_verified"])

	rec = api.do(http.MethodGet, "/api/protests/?city=lahore", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/protests/?city=karachi", "", nil)
	assert.Empty(t, decode[[]map[string]any](t, rec))

	rec = api.do(http.MethodGet, "/api/protests/"+id(protestID)+"/status/", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)
}

func TestProtestNotFound(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("bilal", models.RoleUser, false)

	rec := api.do(http.MethodGet, "/api/protests/424242/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Protest not found"}`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/protests/424242/support/", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Protest not found"}`, rec.Body.String())
}

func TestToggleSupport(t *testing.T) {
	api := newTestAPI(t)
	_, organizer := api.user("ayesha", models.RoleOrganizer, true)
	_, supporter := api.user("bilal", models.RoleUser, false)
	protestID := api.createProtest(organizer)
	path := "/api/protests/" + id(protestID) + "/support/"

	rec := api.do(http.MethodPost, path, supporter, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Protest supported successfully"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/protests/"+id(protestID)+"/", supporter, nil)
	detail := decode[map[string]any](t, rec)
	assert.Equal(t, true, detail["is_supported"])
	assert.Equal(t, float64(1), detail["supporter_count"])

	rec = api.do(http.MethodPost, path, supporter, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Protest support removed"}`, rec.Body.String())
}

func TestToggleLike_TwiceLeavesNoLike(t *testing.T) {
	api := newTestAPI(t)
	_, author := api.user("ayesha", models.RoleOrganizer, true)
	_, reader := api.user("bilal", models.RoleUser, false)
	postID := api.createPost(author, true)
	path := "/api/awareness/posts/" + id(postID) + "/like/"

	rec := api.do(http.MethodPost, path, reader, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Post liked successfully"}`, rec.Body.String())

	rec = api.do(http.MethodPost, path, reader, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Post like removed"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/awareness/posts/"+id(postID)+"/", reader, nil)
	detail := decode[map[string]any](t, rec)
	assert.Equal(t, float64(0), detail["like_count"])
	assert.Equal(t, false, detail["is_liked"])
}

func TestListPosts_EngagementPerViewer(t *testing.T) {
	api := newTestAPI(t)
	_, author := api.user("ayesha", models.RoleOrganizer, true)
	_, reader := api.user("bilal", models.RoleUser, false)
	liked := api.createPost(author, true)
	quiet := api.createPost(author, true)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/awareness/posts/"+id(liked)+"/like/", reader, nil).Code)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/awareness/posts/"+id(quiet)+"/comments/", reader,
		map[string]any{"content": "Sharing this with my union"}).Code)

	byID := func(token string) map[int64]map[string]any {
		rec := api.do(http.MethodGet, "/api/awareness/posts/", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		out := map[int64]map[string]any{}
		for _, p := range decode[[]map[string]any](t, rec) {
			out[int64(p["id"].(float64))] = p
		}
		return out
	}

	posts := byID(reader)
	require.Len(t, posts, 2)
	assert.Equal(t, float64(1), posts[liked]["like_count"])
	assert.Equal(t, true, posts[liked]["is_liked"])
	assert.Equal(t, float64(0), posts[quiet]["like_count"])
	assert.Equal(t, false, posts[quiet]["is_liked"])
	assert.Equal(t, float64(1), posts[quiet]["comment_count"])

	posts = byID("")
	assert.Equal(t, float64(1), posts[liked]["like_count"])
	assert.Equal(t, false, posts[liked]["is_liked"])
}

func TestToggleLike_Errors(t *testing.T) {
	api := newTestAPI(t)
	_, reader := api.user("bilal", models.RoleUser, false)

	rec := api.do(http.MethodPost, "/api/awareness/posts/424242/like/", reader, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Blog post not found"}`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/awareness/posts/1/like/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPosts_VisibilityAndReadOnlyFields(t *testing.T) {
	api := newTestAPI(t)
	author, token := api.user("ayesha", models.RoleOrganizer, true)
	publishedID := api.createPost(token, true)
	draftID := api.createPost(token, false)

	rec := api.do(http.MethodGet, "/api/awareness/posts/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, float64(publishedID), list[0]["id"])
	assert.Equal(t, float64(author.ID), list[0]["author"])
	assert.Equal(t, "ayesha", list[0]["author_name"])
	assert.Equal(t, float64(0), list[0]["views_count"])
	assert.NotNil(t, list[0]["published_at"])

	rec = api.do(http.MethodGet, "/api/awareness/posts/"+id(draftID)+"/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["is_published"])

	rec = api.do(http.MethodGet, "/api/awareness/posts/?category=laws", "", nil)
	assert.Empty(t, decode[[]map[string]any](t, rec))

	rec = api.do(http.MethodGet, "/api/awareness/posts/?author=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPosts_Validation(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("ayesha", models.RoleOrganizer, true)

	rec := api.do(http.MethodPost, "/api/awareness/posts/", token, map[string]any{"category": "gossip"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "this field is required", body["title"])
	assert.Equal(t, "this field is required", body["content"])
	assert.Contains(t, body, "category")
}

func TestComments(t *testing.T) {
	api := newTestAPI(t)
	_, author := api.user("ayesha", models.RoleOrganizer, true)
	reader, readerToken := api.user("bilal", models.RoleUser, false)
	postID := api.createPost(author, true)
	path := "/api/awareness/posts/" + id(postID) + "/comments/"

	rec := api.do(http.MethodPost, path, readerToken, map[string]any{"content": "Shared with my union.", "is_approved": false})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, true, created["is_approved"])
	assert.Equal(t, float64(reader.ID), created["user"])
	assert.Equal(t, "bilal", created["user_name"])
	assert.Equal(t, float64(postID), created["blog_post"])

	rec = api.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/awareness/posts/"+id(postID)+"/", "", nil)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["comment_count"])

	rec = api.do(http.MethodPost, "/api/awareness/posts/424242/comments/", readerToken, map[string]any{"content": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtestUpdates(t *testing.T) {
	api := newTestAPI(t)
	_, organizer := api.user("ayesha", models.RoleOrganizer, true)
	_, other := api.user("hamza", models.RoleOrganizer, true)
	_, admin := api.user("admin", models.RoleAdmin, false)
	protestID := api.createProtest(organizer)
	path := "/api/protests/" + id(protestID) + "/updates/"
	update := map[string]any{"update_type": "location", "title": "Moved to Liberty Chowk", "text": "Gather at 4pm."}

	rec := api.do(http.MethodPost, path, other, update)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPost, path, organizer, update)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "ayesha", decode[map[string]any](t, rec)["author_name"])

	rec = api.do(http.MethodPost, path, admin, map[string]any{"title": "Permit confirmed", "text": "Police escort assigned."})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "info", decode[map[string]any](t, rec)["update_type"])

	rec = api.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestRegisterLoginProfile(t *testing.T) {
	api := newTestAPI(t)

	register := map[string]any{
		"username":     "zainab",
		"email":        "Zainab@Example.com",
		"password":     "peaceful-assembly",
		"password2":    "peaceful-assembly",
		"city":         "karachi",
		"phone_number": "03211234567",
		"role":         "organizer",
	}
	rec := api.do(http.MethodPost, "/api/auth/register/", "", register)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "organizer", created["role"])
	assert.Equal(t, "zainab@example.com", created["email"])
	assert.NotContains(t, created, "password_hash")

	register["email"] = "zainab.other@example.com"
	rec = api.do(http.MethodPost, "/api/auth/register/", "", register)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec), "username")

	rec = api.do(http.MethodPost, "/api/auth/login/", "", map[string]string{"username": "zainab", "password": "wrong-password"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login/", "", map[string]string{"username": "zainab", "password": "peaceful-assembly"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[map[string]any](t, rec)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = api.do(http.MethodGet, "/api/auth/profile/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "zainab", decode[map[string]any](t, rec)["username"])

	// The session cookie authenticates without a bearer token.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	cookieRec := httptest.NewRecorder()
	api.handler.ServeHTTP(cookieRec, req)
	assert.Equal(t, http.StatusOK, cookieRec.Code)

	rec = api.do(http.MethodPatch, "/api/auth/profile/", token, map[string]any{"bio": "Water rights.", "role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode[map[string]any](t, rec)
	assert.Equal(t, "Water rights.", profile["bio"])
	assert.Equal(t, "organizer", profile["role"])
	assert.Equal(t, "karachi", profile["city"])
}

func TestRegister_Validation(t *testing.T) {
	api := newTestAPI(t)
	base := func() map[string]any {
		return map[string]any{
			"username":  "kamran",
			"email":     "kamran@example.com",
			"password":  "peaceful-assembly",
			"password2": "peaceful-assembly",
		}
	}

	tests := []struct {
		name  string
		edit  func(map[string]any)
		field string
	}{
		{"password mismatch", func(b map[string]any) { b["password2"] = "something-else" }, "password"},
		{"numeric password", func(b map[string]any) { b["password"] = "12345678"; b["password2"] = "12345678" }, "password"},
		{"admin role", func(b map[string]any) { b["role"] = "admin" }, "role"},
		{"unknown city", func(b map[string]any) { b["city"] = "atlantis" }, "city"},
		{"bad email", func(b map[string]any) { b["email"] = "not-an-email" }, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			tt.edit(body)
			rec := api.do(http.MethodPost, "/api/auth/register/", "", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec), tt.field)
		})
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/protests/", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpload(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("ayesha", models.RoleOrganizer, true)

	upload := func(name string, content []byte, kind string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("kind", kind))
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/uploads/", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := upload("poster.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "image")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	url := decode[map[string]string](t, rec)["url"]
	assert.True(t, strings.HasPrefix(url, "/uploads/images/"), url)

	rec = upload("permit.pdf", []byte("%PDF-1.4\n"), "document")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = upload("poster.gif", []byte("GIF89a"), "image")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload("poster.png", []byte("\x89PNG\r\n\x1a\n"), "video")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)
	_, author := api.user("ayesha", models.RoleOrganizer, true)
	postID := api.createPost(author, true)
	api.do(http.MethodPost, "/api/awareness/posts/"+id(postID)+"/like/", author, nil)

	rec := api.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `protesthub_toggles_total{relation="like",result="added"} 1`)
	assert.Contains(t, rec.Body.String(), `route="/api/awareness/posts/{id}/like/"`)
}
