package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/domain"
	"github.com/arklim/game-platform-auth/internal/repository"
	"github.com/arklim/game-platform-auth/internal/repository/memory"
	"github.com/arklim/game-platform-auth/internal/usecase"
)

type fakePublisher struct {
	topics        []string
	correlationID [][]byte
	payloads      [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, topic string, correlationID []byte, payload []byte) error {
	p.topics = append(p.topics, topic)
	p.correlationID = append(p.correlationID, correlationID)
	p.payloads = append(p.payloads, payload)
	return nil
}

type fixedVerifier struct {
	login    string
	password string
	id       domain.AccountID
}

func (v *fixedVerifier) Verify(_ context.Context, login, password string) (domain.TokenVerification, error) {
	if login != v.login {
		return domain.TokenVerification{}, repository.ErrNotFound
	}
	return domain.TokenVerification{AccountID: v.id, Authenticated: password == v.password}, nil
}

type routerAccountStore struct {
	created []domain.TemporaryAccount
	confirm []domain.AccountConfirmation
}

func (s *routerAccountStore) LoginExists(context.Context, string) (bool, error) { return false, nil }
func (s *routerAccountStore) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (s *routerAccountStore) CreatePending(_ context.Context, account domain.TemporaryAccount, _ string) error {
	s.created = append(s.created, account)
	return nil
}

func (s *routerAccountStore) Confirm(_ context.Context, confirmation domain.AccountConfirmation) (domain.AccountCreatedEvent, error) {
	s.confirm = append(s.confirm, confirmation)
	return domain.AccountCreatedEvent{Login: confirmation.Login, AccountID: 42}, nil
}

type noopMailer struct{}

func (noopMailer) SendConfirmation(context.Context, string, string, string, string) error {
	return nil
}

type routerNotifier struct {
	events []domain.AccountCreatedEvent
}

func (n *routerNotifier) PublishAccountCreated(_ context.Context, event domain.AccountCreatedEvent) error {
	n.events = append(n.events, event)
	return nil
}

func newTestRouter(t *testing.T, prefix string) (*Router, *fakePublisher, *routerAccountStore) {
	t.Helper()

	out := &fakePublisher{}
	store := &routerAccountStore{}
	notifier := &routerNotifier{}

	auth := usecase.NewAuthenticationService(
		&fixedVerifier{login: "kael", password: "hunter22", id: 7},
		memory.NewAttemptStore(), 5, 15*time.Second, zap.NewNop())
	accounts := usecase.NewAccountService(store, noopMailer{}, notifier, zap.NewNop())

	return NewRouter(auth, accounts, out, prefix, nil, zap.NewNop()), out, store
}

func requestMessage(topic string, correlationID string, payload any) *sarama.ConsumerMessage {
	value, _ := json.Marshal(payload)
	msg := &sarama.ConsumerMessage{Topic: topic, Value: value}
	if correlationID != "" {
		msg.Headers = []*sarama.RecordHeader{{
			Key:   []byte(CorrelationIDHeader),
			Value: []byte(correlationID),
		}}
	}
	return msg
}

func TestRouterTopics(t *testing.T) {
	router, _, _ := newTestRouter(t, "")
	topics := router.Topics()
	want := []string{
		TopicCreateAccountRequest,
		TopicCreateAccountConfirmationRequest,
		TopicAuthenticationRequest,
	}
	if len(topics) != len(want) {
		t.Fatalf("expected %v, got %v", want, topics)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, topics)
		}
	}
}

func TestRouterTopicsPrefixed(t *testing.T) {
	router, _, _ := newTestRouter(t, "dev")
	for _, topic := range router.Topics() {
		if len(topic) < 4 || topic[:4] != "dev." {
			t.Fatalf("expected prefixed topic, got %q", topic)
		}
	}
}

func TestRouterAuthenticationResponse(t *testing.T) {
	router, out, _ := newTestRouter(t, "")

	msg := requestMessage(TopicAuthenticationRequest, "req-42",
		credentialsPayload{Login: "kael", Password: "hunter22"})

	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if len(out.topics) != 1 || out.topics[0] != TopicAuthenticationResponse {
		t.Fatalf("expected one response on %s, got %v", TopicAuthenticationResponse, out.topics)
	}
	if string(out.correlationID[0]) != "req-42" {
		t.Fatalf("expected the correlation id to be echoed, got %q", out.correlationID[0])
	}

	var response tokenPayload
	if err := json.Unmarshal(out.payloads[0], &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if response.Status != string(domain.StatusAuthenticated) {
		t.Fatalf("expected AUTHENTICATED, got %s", response.Status)
	}
	if response.AccountID != 7 {
		t.Fatalf("expected account id 7, got %d", response.AccountID)
	}
}

func TestRouterAuthenticationUnknownLogin(t *testing.T) {
	router, out, _ := newTestRouter(t, "")

	msg := requestMessage(TopicAuthenticationRequest, "req-1",
		credentialsPayload{Login: "ghost", Password: "whatever"})

	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	var response tokenPayload
	if err := json.Unmarshal(out.payloads[0], &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if response.Status != string(domain.StatusNotFound) {
		t.Fatalf("expected NOT_FOUND, got %s", response.Status)
	}
	if response.AccountID != 0 || response.Secret != 0 {
		t.Fatalf("token fields must be zero outside AUTHENTICATED, got %+v", response)
	}
}

func TestRouterMalformedAuthenticationDropped(t *testing.T) {
	router, out, _ := newTestRouter(t, "")

	msg := &sarama.ConsumerMessage{Topic: TopicAuthenticationRequest, Value: []byte("{not json")}
	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if len(out.topics) != 0 {
		t.Fatalf("malformed requests must be dropped without a response, got %v", out.topics)
	}
}

func TestRouterAccountCreationResponse(t *testing.T) {
	router, out, store := newTestRouter(t, "")

	msg := requestMessage(TopicCreateAccountRequest, "req-7", temporaryAccountPayload{
		Login:    "newplayer",
		Password: "secret-pass",
		Email:    "newplayer@example.com",
		Language: "en",
	})

	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected one pending account, got %d", len(store.created))
	}
	if len(out.topics) != 1 || out.topics[0] != TopicAccountCreationTemp {
		t.Fatalf("expected one response on %s, got %v", TopicAccountCreationTemp, out.topics)
	}
	if string(out.correlationID[0]) != "req-7" {
		t.Fatalf("expected the correlation id to be echoed, got %q", out.correlationID[0])
	}

	var response creationResultPayload
	if err := json.Unmarshal(out.payloads[0], &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if response != (creationResultPayload{}) {
		t.Fatalf("expected a clean result, got %+v", response)
	}
}

func TestRouterAccountCreationRejection(t *testing.T) {
	router, out, store := newTestRouter(t, "")

	msg := requestMessage(TopicCreateAccountRequest, "req-8", temporaryAccountPayload{
		Login:    "a",
		Password: "secret-pass",
		Email:    "bademail",
	})

	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if len(store.created) != 0 {
		t.Fatal("a rejected signup must not be persisted")
	}

	var response creationResultPayload
	if err := json.Unmarshal(out.payloads[0], &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !response.InvalidLogin || !response.InvalidEmail {
		t.Fatalf("expected invalid_login and invalid_email, got %+v", response)
	}
}

func TestRouterConfirmationFireAndForget(t *testing.T) {
	router, out, store := newTestRouter(t, "")

	msg := requestMessage(TopicCreateAccountConfirmationRequest, "req-9",
		confirmationPayload{Login: "newplayer", Token: "tok-1"})

	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if len(store.confirm) != 1 {
		t.Fatalf("expected one confirmation, got %d", len(store.confirm))
	}
	if len(out.topics) != 0 {
		t.Fatalf("confirmations have no response queue, got %v", out.topics)
	}
}

func TestRouterPrefixedTopicRouting(t *testing.T) {
	router, out, _ := newTestRouter(t, "dev")

	msg := requestMessage("dev."+TopicAuthenticationRequest, "req-10",
		credentialsPayload{Login: "kael", Password: "hunter22"})

	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if len(out.topics) != 1 {
		t.Fatalf("expected the prefixed request to be routed, got %v", out.topics)
	}
}

func TestRouterMissingCorrelationID(t *testing.T) {
	router, out, _ := newTestRouter(t, "")

	msg := requestMessage(TopicAuthenticationRequest, "",
		credentialsPayload{Login: "kael", Password: "hunter22"})

	if err := router.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if len(out.correlationID) != 1 || out.correlationID[0] != nil {
		t.Fatalf("expected a nil correlation id, got %v", out.correlationID)
	}
}
