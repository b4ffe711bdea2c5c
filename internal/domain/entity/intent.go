package entity

// AgentName identifies which specialized agent handles a message.
type AgentName string

const (
	AgentAppointment  AgentName = "appointment"
	AgentMedical      AgentName = "medical"
	AgentOrchestrator AgentName = "orchestrator"
)

// Responder labels shown to the end user on responses.
const (
	ResponderAppointment  = "Appointment Coordinator"
	ResponderMedical      = "Medical Advisor"
	ResponderOrchestrator = "orchestrator"
	ResponderSystem       = "system"
)

// ChatTurn is one prior message in the conversation, passed through to the
// upstream classifier for context.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IntentRecord is the structured routing decision produced by the upstream
// intent classifier. The negotiation core treats it as an opaque contract:
// it never classifies intent itself.
type IntentRecord struct {
	Agent         AgentName       `json:"agent"`
	Intent        string          `json:"intent,omitempty"`
	Details       *BookingRequest `json:"details,omitempty"`
	MissingFields []string        `json:"missing_fields,omitempty"`
	Response      string          `json:"response,omitempty"`
}
