package kafka

// Queue names of the authentication protocol. Requesters stamp an opaque
// correlation id on each request; responses echo it verbatim so a caller
// with many requests in flight can demultiplex replies.
const (
	// TopicCreateAccountRequest carries signup requests.
	TopicCreateAccountRequest = "create-account-request"
	// TopicAccountCreationTemp carries creation results back to requesters.
	TopicAccountCreationTemp = "account-creation-temp"
	// TopicCreateAccountConfirmationRequest carries confirmation tokens.
	// Fire and forget: there is no response queue.
	TopicCreateAccountConfirmationRequest = "create-account-confirmation-request"
	// TopicAuthenticationRequest carries login/password pairs.
	TopicAuthenticationRequest = "authentication-request"
	// TopicAuthenticationResponse carries authentication tokens back.
	TopicAuthenticationResponse = "authentication-response"
	// TopicAccountCreated announces promoted accounts to the platform.
	TopicAccountCreated = "account-created"
)

// CorrelationIDHeader is the message header carrying the requester's
// correlation id.
const CorrelationIDHeader = "correlation-id"
