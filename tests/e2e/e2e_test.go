package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"gigboard/internal/database"
	"gigboard/internal/middleware"
	"gigboard/internal/modules/auth"
	"gigboard/internal/modules/bid"
	"gigboard/internal/modules/gig"
	"gigboard/internal/modules/notification"
	jwtsvc "gigboard/internal/pkg/jwt"
	"gigboard/internal/repository"
	"gigboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	hub    *ws.Hub
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type TestListResponse struct {
	Success bool                     `json:"success"`
	Data    []map[string]interface{} `json:"data"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	// A single connection keeps all goroutines on the same in-memory
	// database and serializes the hire transactions.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	userRepo := repository.NewUserRepository(db)
	gigRepo := repository.NewGigRepository(db)
	bidRepo := repository.NewBidRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := ws.NewHub()

	authService := auth.NewService(userRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	gigService := gig.NewService(gigRepo)
	gigHandler := gig.NewHandler(gigService)

	notifService := notification.NewService(notifRepo, hub)
	notifHandler := notification.NewHandler(notifService)

	bidService := bid.NewService(bidRepo, gigRepo, notifService)
	bidHandler := bid.NewHandler(bidService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	gigHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		gigHandler.RegisterProtectedRoutes(protected)
		bidHandler.RegisterRoutes(protected)
		notifHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{router: r, db: db, hub: hub}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func parseListResponse(t *testing.T, w *httptest.ResponseRecorder) *TestListResponse {
	t.Helper()
	var resp TestListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse list response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// registerUser registers a fresh account and returns its token and id.
func (s *E2ETestSuite) registerUser(t *testing.T, username, email string) (string, int64) {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"username": username,
		"email":    email,
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	require.True(t, resp.Success)

	token := resp.Data["token"].(string)
	user := resp.Data["user"].(map[string]interface{})
	return token, int64(user["id"].(float64))
}

// postGig creates a gig and returns its id.
func (s *E2ETestSuite) postGig(t *testing.T, token, title string) int64 {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/gigs", map[string]interface{}{
		"title":       title,
		"description": "Details for " + title,
		"budget":      750.0,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "gig creation failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	require.True(t, resp.Success)
	return int64(resp.Data["id"].(float64))
}

// placeBid submits a bid and returns its id.
func (s *E2ETestSuite) placeBid(t *testing.T, token string, gigID int64, price float64) int64 {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
		"gig_id":  gigID,
		"message": "I can deliver this",
		"price":   price,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "bid failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	require.True(t, resp.Success)
	return int64(resp.Data["id"].(float64))
}

func TestFlow1_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("POST /auth/register", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"username": "alice",
			"email":    "alice@test.com",
			"password": "Password123!",
		}, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("POST /auth/register duplicate", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"username": "alice",
			"email":    "alice@test.com",
			"password": "Password123!",
		}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "USER_EXISTS", resp.Error.Code)
	})

	t.Run("POST /auth/login", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "alice@test.com",
			"password": "Password123!",
		}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("GET /auth/me", func(t *testing.T) {
		loginW := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "alice@test.com",
			"password": "Password123!",
		}, "")
		token := parseResponse(t, loginW).Data["token"].(string)

		w := suite.makeRequest("GET", "/api/v1/auth/me", nil, token)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "alice@test.com", user["email"])
	})

	t.Run("GET /bids/mine without token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bids/mine", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow2_GigLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken, _ := suite.registerUser(t, "owner", "owner@test.com")
	gigID := suite.postGig(t, ownerToken, "Build a landing page")

	t.Run("GET /gigs lists open gigs publicly", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/gigs", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseListResponse(t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Build a landing page", resp.Data[0]["title"])
		assert.Equal(t, "open", resp.Data[0]["status"])
	})

	t.Run("GET /gigs?search filters by title", func(t *testing.T) {
		suite.postGig(t, ownerToken, "Fix payment webhook")

		w := suite.makeRequest("GET", "/api/v1/gigs?search=webhook", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseListResponse(t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Fix payment webhook", resp.Data[0]["title"])
	})

	t.Run("GET /gigs/:id", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/gigs/%d", gigID), nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "Build a landing page", resp.Data["title"])
	})

	t.Run("GET /gigs/:id unknown", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/gigs/9999", nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", parseResponse(t, w).Error.Code)
	})

	t.Run("GET /gigs/mine", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/gigs/mine", nil, ownerToken)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseListResponse(t, w)
		assert.Len(t, resp.Data, 2)
	})
}

func TestFlow3_BiddingRules(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken, _ := suite.registerUser(t, "owner", "owner@test.com")
	freelancerToken, _ := suite.registerUser(t, "bob", "bob@test.com")
	gigID := suite.postGig(t, ownerToken, "Build a landing page")

	t.Run("POST /bids", func(t *testing.T) {
		suite.placeBid(t, freelancerToken, gigID, 120)
	})

	t.Run("POST /bids duplicate on same gig", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
			"gig_id":  gigID,
			"message": "second try",
			"price":   110.0,
		}, freelancerToken)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "DUPLICATE_BID", parseResponse(t, w).Error.Code)
	})

	t.Run("POST /bids on own gig", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
			"gig_id":  gigID,
			"message": "bidding on myself",
			"price":   50.0,
		}, ownerToken)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "SELF_BID", parseResponse(t, w).Error.Code)
	})

	t.Run("POST /bids on unknown gig", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bids", map[string]interface{}{
			"gig_id":  int64(9999),
			"message": "ghost gig",
			"price":   50.0,
		}, freelancerToken)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /bids/:id owner only", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/bids/%d", gigID), nil, ownerToken)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseListResponse(t, w)
		assert.Len(t, resp.Data, 1)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bids/%d", gigID), nil, freelancerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /bids/mine", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bids/mine", nil, freelancerToken)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseListResponse(t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "pending", resp.Data[0]["status"])
	})
}

func TestFlow4_HireAndNotify(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken, _ := suite.registerUser(t, "owner", "owner@test.com")
	bobToken, _ := suite.registerUser(t, "bob", "bob@test.com")
	carolToken, _ := suite.registerUser(t, "carol", "carol@test.com")

	gigID := suite.postGig(t, ownerToken, "Build a landing page")
	bobBid := suite.placeBid(t, bobToken, gigID, 120)
	carolBid := suite.placeBid(t, carolToken, gigID, 140)

	t.Run("non-owner cannot hire", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bids/%d/hire", bobBid), nil, carolToken)

		assert.Equal(t, http.StatusForbidden, w.Code)

		// Nothing changed.
		gw := suite.makeRequest("GET", fmt.Sprintf("/api/v1/gigs/%d", gigID), nil, "")
		assert.Equal(t, "open", parseResponse(t, gw).Data["status"])
	})

	t.Run("PATCH /bids/:id/hire", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bids/%d/hire", bobBid), nil, ownerToken)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "hired", resp.Data["status"])

		gw := suite.makeRequest("GET", fmt.Sprintf("/api/v1/gigs/%d", gigID), nil, "")
		assert.Equal(t, "assigned", parseResponse(t, gw).Data["status"])

		// Losing bid was rejected in the same transaction.
		bw := suite.makeRequest("GET", "/api/v1/bids/mine", nil, carolToken)
		carolBids := parseListResponse(t, bw).Data
		require.Len(t, carolBids, 1)
		assert.Equal(t, "rejected", carolBids[0]["status"])
	})

	t.Run("second hire on assigned gig conflicts", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bids/%d/hire", carolBid), nil, ownerToken)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	var notifID int64
	t.Run("hired freelancer has a durable notification", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/notifications", nil, bobToken)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		list := resp.Data["notifications"].([]interface{})
		require.Len(t, list, 1)

		n := list[0].(map[string]interface{})
		assert.Equal(t, "hired", n["type"])
		assert.Equal(t, "You have been hired for Build a landing page!", n["message"])
		assert.False(t, n["is_read"].(bool))
		assert.Equal(t, float64(1), resp.Data["unread_count"])
		notifID = int64(n["id"].(float64))
	})

	t.Run("losing freelancer got nothing", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/notifications", nil, carolToken)

		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["notifications"])
	})

	t.Run("PATCH /notifications/:id/read", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/notifications/%d/read", notifID), nil, bobToken)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, parseResponse(t, w).Data["is_read"].(bool))

		// Idempotent on repeat.
		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/notifications/%d/read", notifID), nil, bobToken)
		assert.Equal(t, http.StatusOK, w.Code)

		lw := suite.makeRequest("GET", "/api/v1/notifications", nil, bobToken)
		assert.Equal(t, float64(0), parseResponse(t, lw).Data["unread_count"])
	})

	t.Run("other users cannot read my notification", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/notifications/%d/read", notifID), nil, carolToken)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFlow5_ConcurrentHire(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken, _ := suite.registerUser(t, "owner", "owner@test.com")
	gigID := suite.postGig(t, ownerToken, "Build a landing page")

	const n = 5
	bidIDs := make([]int64, n)
	for i := 0; i < n; i++ {
		token, _ := suite.registerUser(t,
			fmt.Sprintf("freelancer%d", i),
			fmt.Sprintf("freelancer%d@test.com", i))
		bidIDs[i] = suite.placeBid(t, token, gigID, float64(100+i))
	}

	// All hire requests land at once; exactly one may win.
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/bids/%d/hire", bidIDs[i]), nil, ownerToken)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			winners++
		default:
			assert.Equal(t, http.StatusConflict, code)
		}
	}
	assert.Equal(t, 1, winners)

	w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/gigs/%d", gigID), nil, "")
	assert.Equal(t, "assigned", parseResponse(t, w).Data["status"])

	bw := suite.makeRequest("GET", fmt.Sprintf("/api/v1/bids/%d", gigID), nil, ownerToken)
	statuses := map[string]int{}
	for _, b := range parseListResponse(t, bw).Data {
		statuses[b["status"].(string)]++
	}
	assert.Equal(t, 1, statuses["hired"])
	assert.Equal(t, n-1, statuses["rejected"])
	assert.Equal(t, 0, statuses["pending"])
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
