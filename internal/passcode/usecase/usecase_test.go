package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/loanforge/loanforge/internal/passcode/entity"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeStore struct {
	items   map[string]entity.Passcode
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]entity.Passcode)}
}

func (f *fakeStore) Save(_ context.Context, pc entity.Passcode) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	f.items[pc.Key()] = pc

	return nil
}

func (f *fakeStore) Find(_ context.Context, transactionID, recipient string) (*entity.Passcode, error) {
	pc, ok := f.items[entity.IdentityKey(transactionID, recipient)]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &pc, nil
}

type fakePublisher struct {
	events []PasscodeIssuedEvent
	err    error
}

func (f *fakePublisher) PublishPasscodeIssued(_ context.Context, msg PasscodeIssuedEvent) error {
	if f.err != nil {
		return f.err
	}

	f.events = append(f.events, msg)

	return nil
}

type fakeCodes struct {
	codes []string
	err   error
}

func (f *fakeCodes) Generate() (string, error) {
	if f.err != nil {
		return "", f.err
	}

	code := f.codes[0]
	if len(f.codes) > 1 {
		f.codes = f.codes[1:]
	}

	return code, nil
}

const testConfig = `
modules:
  passcode:
    ttl_seconds: 600
`

type fixture struct {
	uc    *Usecase
	store *fakeStore
	pub   *fakePublisher
	codes *fakeCodes
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	if err != nil {
		t.Fatalf("config.NewViperFromBytes() error = %v", err)
	}

	val, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator.NewV10Validator() error = %v", err)
	}

	f := &fixture{
		store: newFakeStore(),
		pub:   &fakePublisher{},
		codes: &fakeCodes{codes: []string{"123456"}},
		clock: &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	f.uc = New(Dependency{
		RepoStore:     f.store,
		RepoMessaging: f.pub,
		Codes:         f.codes,
		Validator:     val,
		Config:        cfg,
		Clock:         f.clock,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func TestUsecase_Issue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.Issue(ctx, IssueInput{TransactionID: "txn-1", Recipient: " User@Example.com "})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if out.Recipient != "user@example.com" {
		t.Fatalf("Issue() recipient = %q, want normalized %q", out.Recipient, "user@example.com")
	}

	if out.Channel != entity.ChannelEmail {
		t.Fatalf("Issue() channel = %q, want %q", out.Channel, entity.ChannelEmail)
	}

	wantExpiry := f.clock.now.Add(10 * time.Minute)
	if !out.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("Issue() expires at = %v, want %v", out.ExpiresAt, wantExpiry)
	}

	if len(f.pub.events) != 1 {
		t.Fatalf("published events = %d, want 1", len(f.pub.events))
	}

	if evt := f.pub.events[0]; evt.Code != "123456" || evt.Channel != "email" {
		t.Fatalf("published event = %+v, want code 123456 over email", evt)
	}

	if _, err := f.store.Find(ctx, "txn-1", "user@example.com"); err != nil {
		t.Fatalf("stored passcode not found: %v", err)
	}
}

func TestUsecase_IssueInvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   IssueInput
	}{
		{name: "EmptyTransactionID", in: IssueInput{Recipient: "user@example.com"}},
		{name: "EmptyRecipient", in: IssueInput{TransactionID: "txn-1"}},
		{name: "WhitespaceRecipient", in: IssueInput{TransactionID: "txn-1", Recipient: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Issue(context.Background(), tt.in)

			var gerr *goerror.Error
			if !errors.As(err, &gerr) {
				t.Fatalf("Issue() error = %v, want a structured validation error", err)
			}

			if len(f.store.items) != 0 {
				t.Fatalf("store holds %d entries, want none after rejected input", len(f.store.items))
			}

			if len(f.pub.events) != 0 {
				t.Fatalf("published events = %d, want none after rejected input", len(f.pub.events))
			}
		})
	}
}

func TestUsecase_IssueReplacesPreviousCode(t *testing.T) {
	f := newFixture(t)
	f.codes.codes = []string{"111111", "222222"}
	ctx := context.Background()

	if _, err := f.uc.Issue(ctx, IssueInput{TransactionID: "txn-1", Recipient: "user@example.com"}); err != nil {
		t.Fatalf("Issue(first) error = %v", err)
	}
	if _, err := f.uc.Issue(ctx, IssueInput{TransactionID: "txn-1", Recipient: "user@example.com"}); err != nil {
		t.Fatalf("Issue(second) error = %v", err)
	}

	old, err := f.uc.Verify(ctx, VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: "111111"})
	if err != nil {
		t.Fatalf("Verify(old code) error = %v", err)
	}
	if old.Valid {
		t.Fatalf("Verify(old code) valid = true, want the replaced code rejected")
	}

	fresh, err := f.uc.Verify(ctx, VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: "222222"})
	if err != nil {
		t.Fatalf("Verify(fresh code) error = %v", err)
	}
	if !fresh.Valid {
		t.Fatalf("Verify(fresh code) valid = false, want true")
	}
}

func TestUsecase_IssueSucceedsWhenPublishFails(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker unavailable")

	out, err := f.uc.Issue(context.Background(), IssueInput{TransactionID: "txn-1", Recipient: "user@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v, want publish failures swallowed", err)
	}

	if out == nil {
		t.Fatalf("Issue() output = nil, want issued passcode details")
	}
}

func TestUsecase_Verify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.Issue(ctx, IssueInput{TransactionID: "txn-1", Recipient: "user@example.com"}); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name string
		in   VerifyInput
		want bool
	}{
		{
			name: "MatchingCode",
			in:   VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: "123456"},
			want: true,
		},
		{
			name: "MatchingCodeUnnormalizedRecipient",
			in:   VerifyInput{TransactionID: "txn-1", Recipient: "  USER@Example.COM ", Code: "123456"},
			want: true,
		},
		{
			name: "WrongCode",
			in:   VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: "654321"},
			want: false,
		},
		{
			name: "NeverIssuedPair",
			in:   VerifyInput{TransactionID: "txn-2", Recipient: "user@example.com", Code: "123456"},
			want: false,
		},
		{
			name: "DifferentRecipientSameTransaction",
			in:   VerifyInput{TransactionID: "txn-1", Recipient: "other@example.com", Code: "123456"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.uc.Verify(ctx, tt.in)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}

			if out.Valid != tt.want {
				t.Fatalf("Verify() valid = %v, want %v", out.Valid, tt.want)
			}
		})
	}
}

func TestUsecase_VerifyIsNotConsuming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.Issue(ctx, IssueInput{TransactionID: "txn-1", Recipient: "user@example.com"}); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	in := VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: "123456"}

	for range 3 {
		out, err := f.uc.Verify(ctx, in)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}

		if !out.Valid {
			t.Fatalf("Verify() valid = false, want repeated checks to keep succeeding")
		}
	}
}

func TestUsecase_VerifyExpiredCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.Issue(ctx, IssueInput{TransactionID: "txn-1", Recipient: "user@example.com"}); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	f.clock.now = f.clock.now.Add(10*time.Minute + time.Second)

	out, err := f.uc.Verify(ctx, VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: "123456"})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if out.Valid {
		t.Fatalf("Verify() valid = true, want expired code rejected")
	}
}

func TestUsecase_VerifyInvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   VerifyInput
	}{
		{name: "EmptyTransactionID", in: VerifyInput{Recipient: "user@example.com", Code: "123456"}},
		{name: "EmptyRecipient", in: VerifyInput{TransactionID: "txn-1", Code: "123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Verify(context.Background(), tt.in)

			var gerr *goerror.Error
			if !errors.As(err, &gerr) {
				t.Fatalf("Verify() error = %v, want a structured validation error", err)
			}
		})
	}
}

func TestUsecase_VerifyMalformedCandidateCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.Issue(ctx, IssueInput{TransactionID: "txn-1", Recipient: "user@example.com"}); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// The candidate is an arbitrary untrusted string. Anything that is not
	// exactly the stored code fails the comparison instead of erroring.
	tests := []struct {
		name string
		code string
	}{
		{name: "Empty", code: ""},
		{name: "TooShort", code: "123"},
		{name: "TooLong", code: "1234567"},
		{name: "Alphabetic", code: "abc"},
		{name: "PaddedMatch", code: " 123456 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.uc.Verify(ctx, VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: tt.code})
			if err != nil {
				t.Fatalf("Verify() error = %v, want malformed candidates treated as a mismatch", err)
			}

			if out.Valid {
				t.Fatalf("Verify(%q) valid = true, want false", tt.code)
			}
		})
	}

	out, err := f.uc.Verify(ctx, VerifyInput{TransactionID: "txn-1", Recipient: "user@example.com", Code: "123456"})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !out.Valid {
		t.Fatalf("Verify() valid = false after malformed attempts, want the record untouched")
	}
}
