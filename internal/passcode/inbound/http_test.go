package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/loanforge/loanforge/internal/passcode/entity"
	"github.com/loanforge/loanforge/internal/passcode/usecase"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/router"
	"github.com/loanforge/loanforge/internal/pkg/uid"
)

type fakeUsecase struct {
	issueOut  *usecase.IssueOutput
	issueErr  error
	verifyOut *usecase.VerifyOutput
	verifyErr error
}

func (f *fakeUsecase) Issue(_ context.Context, _ usecase.IssueInput) (*usecase.IssueOutput, error) {
	return f.issueOut, f.issueErr
}

func (f *fakeUsecase) Verify(_ context.Context, _ usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	return f.verifyOut, f.verifyErr
}

func newTestServer(t *testing.T, uc uc) *httptest.Server {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	if err != nil {
		t.Fatalf("config.NewViperFromBytes() error = %v", err)
	}

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})

	RegisterHTTPEndpoint(r, uc)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func TestHTTPEndpoint_Send(t *testing.T) {
	expires := time.Date(2025, 6, 1, 10, 10, 0, 0, time.UTC)
	srv := newTestServer(t, &fakeUsecase{
		issueOut: &usecase.IssueOutput{
			TransactionID: "txn-1",
			Recipient:     "user@example.com",
			Channel:       entity.ChannelEmail,
			ExpiresAt:     expires,
		},
	})

	body := bytes.NewBufferString(`{"transaction_id":"txn-1","recipient":"user@example.com"}`)
	resp, err := http.Post(srv.URL+"/api/v1/otp/send", "application/json", body)
	if err != nil {
		t.Fatalf("http.Post() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got struct {
		Message string          `json:"message"`
		Data    SendOTPResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if got.Data.Channel != "email" {
		t.Fatalf("channel = %q, want %q", got.Data.Channel, "email")
	}

	if !got.Data.ExpiresAt.Equal(expires) {
		t.Fatalf("expires at = %v, want %v", got.Data.ExpiresAt, expires)
	}
}

func TestHTTPEndpoint_SendInvalidInput(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{
		issueErr: goerror.NewInvalidInput(nil),
	})

	body := bytes.NewBufferString(`{"transaction_id":"","recipient":""}`)
	resp, err := http.Post(srv.URL+"/api/v1/otp/send", "application/json", body)
	if err != nil {
		t.Fatalf("http.Post() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestHTTPEndpoint_SendMalformedBody(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{})

	body := bytes.NewBufferString(`{"transaction_id": "txn-1", "unknown_field": true}`)
	resp, err := http.Post(srv.URL+"/api/v1/otp/send", "application/json", body)
	if err != nil {
		t.Fatalf("http.Post() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHTTPEndpoint_Verify(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{name: "ValidCode", valid: true},
		{name: "InvalidCode", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeUsecase{
				verifyOut: &usecase.VerifyOutput{Valid: tt.valid},
			})

			body := bytes.NewBufferString(`{"transaction_id":"txn-1","recipient":"user@example.com","code":"123456"}`)
			resp, err := http.Post(srv.URL+"/api/v1/otp/verify", "application/json", body)
			if err != nil {
				t.Fatalf("http.Post() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
			}

			var got struct {
				Data VerifyOTPResponse `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if got.Data.Verified != tt.valid {
				t.Fatalf("verified = %v, want %v", got.Data.Verified, tt.valid)
			}

			wantReason := ""
			if !tt.valid {
				wantReason = "Invalid or expired code"
			}
			if got.Data.Reason != wantReason {
				t.Fatalf("reason = %q, want %q", got.Data.Reason, wantReason)
			}
		})
	}
}
