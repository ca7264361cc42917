package handlers_test

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/splitroom/splitroom/internal/auth"
	"github.com/splitroom/splitroom/internal/handlers"
	"github.com/splitroom/splitroom/internal/roomcode"
	"github.com/splitroom/splitroom/internal/router"
	"github.com/splitroom/splitroom/internal/service"
	"github.com/splitroom/splitroom/internal/storage/sqlite"
)

type testServer struct {
	server *httptest.Server
	otp    *auth.MemoryOTPProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tempDir, err := os.MkdirTemp("", "splitroom-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	otp := auth.NewMemoryOTPProvider(time.Minute)
	jwtManager := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	userService := service.NewUserService(store, otp, jwtManager)
	roomService := service.NewRoomService(store, auth.NewPasswordHasher(), roomcode.New())
	receiptService := service.NewReceiptService(store)

	engine := router.New(router.Handlers{
		Users:    handlers.NewUserHandler(userService),
		Rooms:    handlers.NewRoomHandler(roomService, receiptService),
		Receipts: handlers.NewReceiptHandler(receiptService),
		Payments: handlers.NewPaymentHandler(),
	}, jwtManager)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &testServer{server: server, otp: otp}
}

// do sends a JSON request, optionally authenticated, and decodes the
// response body into out when non-nil.
func (ts *testServer) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

// verify runs the OTP flow and returns (userID, token).
func (ts *testServer) verify(t *testing.T, phone string) (string, string) {
	t.Helper()

	var code string
	ts.otp.OnSend = func(_, c string) { code = c }

	status := ts.do(t, http.MethodPost, "/api/users/initialize-verification", "",
		map[string]string{"phone_number": phone}, nil)
	if status != http.StatusOK {
		t.Fatalf("initialize-verification returned %d", status)
	}

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	status = ts.do(t, http.MethodPost, "/api/users/complete-verification", "",
		map[string]string{"phone_number": phone, "otp": code}, &resp)
	if status != http.StatusOK {
		t.Fatalf("complete-verification returned %d", status)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	return resp.User.ID, resp.AccessToken
}

func TestVerificationFlow(t *testing.T) {
	ts := newTestServer(t)

	t.Run("wrong OTP rejected", func(t *testing.T) {
		ts.do(t, http.MethodPost, "/api/users/initialize-verification", "",
			map[string]string{"phone_number": "+15559990001"}, nil)

		status := ts.do(t, http.MethodPost, "/api/users/complete-verification", "",
			map[string]string{"phone_number": "+15559990001", "otp": "wrong!"}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400 for wrong OTP, got %d", status)
		}
	})

	t.Run("correct OTP returns user and token", func(t *testing.T) {
		userID, token := ts.verify(t, "+15559990002")
		if userID == "" || token == "" {
			t.Error("expected user id and token")
		}
	})

	t.Run("protected route without token rejected", func(t *testing.T) {
		status := ts.do(t, http.MethodGet, "/api/me/rooms", "", nil, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})
}

func TestRoomAndSettlementFlow(t *testing.T) {
	ts := newTestServer(t)

	aliceID, aliceToken := ts.verify(t, "+15559991001")
	bobID, bobToken := ts.verify(t, "+15559991002")

	// Alice creates a room.
	var room struct {
		Code string `json:"code"`
	}
	status := ts.do(t, http.MethodPost, "/api/rooms", aliceToken,
		map[string]string{"name": "Roadtrip", "password": "secret"}, &room)
	if status != http.StatusCreated {
		t.Fatalf("create room returned %d", status)
	}
	if len(room.Code) != roomcode.Length {
		t.Fatalf("room code %q has wrong length", room.Code)
	}

	// Bob joins with the right password.
	status = ts.do(t, http.MethodPost, "/api/rooms/join", bobToken,
		map[string]string{"code": room.Code, "password": "secret"}, nil)
	if status != http.StatusOK {
		t.Fatalf("join returned %d", status)
	}

	t.Run("duplicate join returns conflict", func(t *testing.T) {
		status := ts.do(t, http.MethodPost, "/api/rooms/join", bobToken,
			map[string]string{"code": room.Code, "password": "secret"}, nil)
		if status != http.StatusConflict {
			t.Errorf("expected 409, got %d", status)
		}
	})

	t.Run("wrong room password rejected", func(t *testing.T) {
		status := ts.do(t, http.MethodPost, "/api/rooms/join", bobToken,
			map[string]string{"code": room.Code, "password": "nope"}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	// Alice enters the dinner receipt.
	var receipt struct {
		ID    string `json:"id"`
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	status = ts.do(t, http.MethodPost, "/api/receipts", aliceToken, map[string]any{
		"name":          "Dinner",
		"room_code":     room.Code,
		"merchant_name": "Thai Basil",
		"total_amount":  50.0,
		"tax_amount":    4.0,
		"tip_amount":    6.0,
		"items": []map[string]any{
			{"name": "ItemA", "cost": 30.0, "user_ids": []string{aliceID, bobID}},
			{"name": "ItemB", "cost": 10.0, "user_ids": []string{aliceID}},
		},
	}, &receipt)
	if status != http.StatusCreated {
		t.Fatalf("create receipt returned %d", status)
	}

	t.Run("settle returns proportional shares", func(t *testing.T) {
		var resp struct {
			Shares map[string]float64 `json:"shares"`
		}
		status := ts.do(t, http.MethodPost, "/api/receipts/"+receipt.ID+"/settle", aliceToken, nil, &resp)
		if status != http.StatusOK {
			t.Fatalf("settle returned %d", status)
		}
		if math.Abs(resp.Shares[aliceID]-31.25) > 1e-9 {
			t.Errorf("alice share = %v, want 31.25", resp.Shares[aliceID])
		}
		if math.Abs(resp.Shares[bobID]-18.75) > 1e-9 {
			t.Errorf("bob share = %v, want 18.75", resp.Shares[bobID])
		}
	})

	t.Run("balance sheet aggregates the room", func(t *testing.T) {
		var resp struct {
			UserCosts map[string]struct {
				TotalCost float64 `json:"total_cost"`
			} `json:"user_costs"`
		}
		status := ts.do(t, http.MethodGet, "/api/rooms/"+room.Code+"/balance-sheet", aliceToken, nil, &resp)
		if status != http.StatusOK {
			t.Fatalf("balance-sheet returned %d", status)
		}
		if math.Abs(resp.UserCosts[aliceID].TotalCost-31.25) > 1e-9 {
			t.Errorf("alice total = %v, want 31.25", resp.UserCosts[aliceID].TotalCost)
		}
	})

	t.Run("reassigning an item re-settles", func(t *testing.T) {
		var resp struct {
			Shares map[string]float64 `json:"shares"`
		}
		status := ts.do(t, http.MethodPut, "/api/items/"+receipt.Items[1].ID+"/users", aliceToken,
			map[string]any{"user_ids": []string{bobID}}, &resp)
		if status != http.StatusOK {
			t.Fatalf("assign returned %d", status)
		}
		if math.Abs(resp.Shares[bobID]-31.25) > 1e-9 {
			t.Errorf("bob share = %v, want 31.25 after reassignment", resp.Shares[bobID])
		}
	})

	t.Run("unknown room code is 404", func(t *testing.T) {
		status := ts.do(t, http.MethodGet, "/api/rooms/ZZZZZZ/balance-sheet", aliceToken, nil, nil)
		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})
}

func TestVenmoLinkEndpoint(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.verify(t, "+15559992001")

	var resp struct {
		PaymentURL string `json:"payment_url"`
	}
	status := ts.do(t, http.MethodPost, "/api/payments/venmo-link", token, map[string]any{
		"payment_amount": 18.75,
		"note":           "Dinner",
		"username":       []string{"alice-v"},
		"payment_type":   "charge",
	}, &resp)
	if status != http.StatusOK {
		t.Fatalf("venmo-link returned %d", status)
	}
	if resp.PaymentURL == "" {
		t.Fatal("expected a payment URL")
	}
	wantPrefix := "https://venmo.com"
	if !strings.HasPrefix(resp.PaymentURL, wantPrefix) {
		t.Errorf("payment URL %q does not start with %q", resp.PaymentURL, wantPrefix)
	}
}
