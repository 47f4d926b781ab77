package controller

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/pbkdf2"

	"container-tracking-service/internal/auth"
	"container-tracking-service/internal/middleware"
	"container-tracking-service/internal/model"
	"container-tracking-service/internal/service"
)

type fakeUserRepo struct {
	customers map[string]*model.Customer
	staff     map[string]*model.StaffUser
}

func (f *fakeUserRepo) FindCustomerByUsername(ctx context.Context, username string) (*model.Customer, error) {
	return f.customers[username], nil
}

func (f *fakeUserRepo) FindStaffByUsername(ctx context.Context, username string) (*model.StaffUser, error) {
	return f.staff[username], nil
}

type fakeOrderRepo struct {
	detail *model.OrderDetail
}

func (f *fakeOrderRepo) FindOrderByContainerNumber(ctx context.Context, containerNumber string) (*model.OrderDetail, error) {
	return f.detail, nil
}

func (f *fakeOrderRepo) SummarizePallets(ctx context.Context, containerNumber string) ([]model.PalletShipmentSummary, error) {
	return nil, nil
}

func testHash(password string) string {
	key := pbkdf2.Key([]byte(password), []byte("testsalt"), 1000, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2_sha256$1000$testsalt$%s", base64.StdEncoding.EncodeToString(key))
}

func strPtr(s string) *string { return &s }

func newTestRouter(users *fakeUserRepo, orders *fakeOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	codec := auth.NewTokenCodec("unit-test-secret", 0)
	authService := service.NewAuthService(users, codec)
	trackingService := service.NewTrackingService(orders)
	ctrl := NewTrackingController(authService, trackingService)

	r := gin.New()
	r.GET("/heartbeat", ctrl.Heartbeat)
	r.POST("/login", ctrl.Login)

	authed := r.Group("/")
	authed.Use(middleware.Auth(authService))
	authed.POST("/order_tracking", ctrl.OrderTracking)

	return r
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHeartbeat(t *testing.T) {
	r := newTestRouter(&fakeUserRepo{}, &fakeOrderRepo{})

	w := doJSON(r, http.MethodGet, "/heartbeat", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !body["is_alive"] {
		t.Fatalf("body = %s, want is_alive true", w.Body.String())
	}
}

func TestLoginStatusCodes(t *testing.T) {
	users := &fakeUserRepo{
		customers: map[string]*model.Customer{
			"acme_user": {ZemName: "ACME", Username: "acme_user", Password: strPtr(testHash("pw"))},
		},
		staff: map[string]*model.StaffUser{
			"frozen": {Username: "frozen", Password: testHash("pw"), IsActive: false},
		},
	}
	r := newTestRouter(users, &fakeOrderRepo{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing fields", `{"username": "", "password": ""}`, http.StatusBadRequest},
		{"unknown user", `{"username": "nobody", "password": "pw"}`, http.StatusNotFound},
		{"wrong password", `{"username": "acme_user", "password": "bad"}`, http.StatusUnauthorized},
		{"disabled staff", `{"username": "frozen", "password": "pw"}`, http.StatusUnauthorized},
		{"success", `{"username": "acme_user", "password": "pw"}`, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/login", tc.body, "")
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestLoginResponseShape(t *testing.T) {
	users := &fakeUserRepo{
		customers: map[string]*model.Customer{
			"acme_user": {ZemName: "ACME", Username: "acme_user", Password: strPtr(testHash("pw"))},
		},
	}
	r := newTestRouter(users, &fakeOrderRepo{})

	w := doJSON(r, http.MethodPost, "/login", `{"username": "acme_user", "password": "pw"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		User        string `json:"user"`
		AccessToken string `json:"access_token"`
		UserType    string `json:"user_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.User != "ACME" || body.UserType != "customer" || body.AccessToken == "" {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestOrderTrackingRequiresToken(t *testing.T) {
	r := newTestRouter(&fakeUserRepo{}, &fakeOrderRepo{})

	w := doJSON(r, http.MethodPost, "/order_tracking", `{"container_number": "MSKU1234567"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/order_tracking", `{"container_number": "MSKU1234567"}`, "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

// Permission denial is a 200 payload with has_permission=false, never an
// HTTP-level error: the frontend renders a friendly message from it.
func TestOrderTrackingPermissionDenialIsOK(t *testing.T) {
	users := &fakeUserRepo{
		customers: map[string]*model.Customer{
			"acme_user": {ZemName: "ACME", Username: "acme_user", Password: strPtr(testHash("pw"))},
		},
	}
	orders := &fakeOrderRepo{
		detail: &model.OrderDetail{
			Order:     model.Order{CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
			User:      &model.Customer{ZemName: "someone-else"},
			Container: &model.Container{ContainerNumber: "MSKU1234567"},
		},
	}
	r := newTestRouter(users, orders)

	login := doJSON(r, http.MethodPost, "/login", `{"username": "acme_user", "password": "pw"}`, "")
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(login.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/order_tracking", `{"container_number": "MSKU1234567"}`, loginBody.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var body struct {
		HasPermission bool            `json:"has_permission"`
		Preport       json.RawMessage `json:"preport_timenode"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.HasPermission {
		t.Fatal("foreign container reported as permitted")
	}
	if string(body.Preport) != "null" {
		t.Fatalf("preport = %s, want null", body.Preport)
	}
}
