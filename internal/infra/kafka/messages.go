package kafka

import (
	"github.com/IBM/sarama"

	"github.com/arklim/game-platform-auth/internal/core/domain"
)

// Wire payloads of the authentication protocol, all JSON encoded.

type credentialsPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type temporaryAccountPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Language string `json:"language"`
}

type confirmationPayload struct {
	Login string `json:"login"`
	Token string `json:"token"`
}

type tokenPayload struct {
	Status    string `json:"status"`
	AccountID int64  `json:"account_id,omitempty"`
	IssuedAt  int64  `json:"issued_at,omitempty"`
	Secret    int32  `json:"secret,omitempty"`
}

type creationResultPayload struct {
	InvalidLogin    bool `json:"invalid_login"`
	InvalidPassword bool `json:"invalid_password"`
	InvalidEmail    bool `json:"invalid_email"`
	EmailMissing    bool `json:"email_missing"`
	AccountExisting bool `json:"account_existing"`
	EmailExisting   bool `json:"email_existing"`
	TechnicalIssue  bool `json:"technical_issue"`
}

func encodeToken(token domain.Token) tokenPayload {
	payload := tokenPayload{Status: string(token.Status)}
	if token.Status == domain.StatusAuthenticated {
		payload.AccountID = int64(token.AccountID)
		payload.IssuedAt = token.IssuedAt.UnixMilli()
		payload.Secret = token.Secret
	}
	return payload
}

func encodeCreationResult(result domain.AccountCreationResult) creationResultPayload {
	return creationResultPayload{
		InvalidLogin:    result.InvalidLogin,
		InvalidPassword: result.InvalidPassword,
		InvalidEmail:    result.InvalidEmail,
		EmailMissing:    result.EmailMissing,
		AccountExisting: result.AccountExisting,
		EmailExisting:   result.EmailExisting,
		TechnicalIssue:  result.TechnicalIssue,
	}
}

// correlationID extracts the requester's correlation id header, nil when the
// request carried none.
func correlationID(msg *sarama.ConsumerMessage) []byte {
	for _, header := range msg.Headers {
		if header != nil && string(header.Key) == CorrelationIDHeader {
			return header.Value
		}
	}
	return nil
}
