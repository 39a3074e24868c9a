package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/validator"
)

const (
	testPartyID   = "0190a3e2-7c1b-7d4e-8f00-112233445566"
	testProductID = "0190a3e2-7c1b-7d4e-8f00-aabbccddeeff"
	testOrderID   = "0190a3e2-7c1b-7d4e-8f00-000000000001"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func TestRespondWithError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.WithMessage(apperrors.ErrValidation, "bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperrors.ErrPartyNotFound, http.StatusNotFound, "PARTY_NOT_FOUND"},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"storage", apperrors.Wrap(apperrors.ErrStorage, errors.New("disk")), http.StatusInternalServerError, "STORAGE_ERROR"},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError, "STORAGE_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { respondWithError(c, tc.err) })

			rec := doRequest(r, "GET", "/", "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			result := parseJSON(t, rec)
			assertErrorCode(t, result, tc.code)
			if tc.name == "storage" {
				msg := result["error"].(map[string]interface{})["message"]
				if strings.Contains(msg.(string), "disk") {
					t.Errorf("internal detail leaked: %v", msg)
				}
			}
		})
	}
}

func TestParsePathID(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, err := parsePathID(c, "id", apperrors.ErrOrderNotFound)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	t.Run("canonicalizes", func(t *testing.T) {
		rec := doRequest(r, "GET", "/things/"+strings.ToUpper(testOrderID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := parseJSON(t, rec)["id"]; got != testOrderID {
			t.Errorf("expected %s, got %v", testOrderID, got)
		}
	})

	t.Run("malformed is not found", func(t *testing.T) {
		rec := doRequest(r, "GET", "/things/17", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ORDER_NOT_FOUND")
	})
}
