package blinks

// Solana Actions payloads returned by the blink endpoints.

const (
	ActionTypeAction      = "action"
	ActionTypeCompleted   = "completed"
	ActionTypeTransaction = "transaction"
	LinkTypePost          = "post"
	LinkTypeExternal      = "external-link"
)

type ActionMetadata struct {
	Type        string       `json:"type"`
	Icon        string       `json:"icon"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Disabled    bool         `json:"disabled,omitempty"`
	Links       *ActionLinks `json:"links,omitempty"`
	Error       *ActionError `json:"error,omitempty"`
}

type ActionLinks struct {
	Actions []LinkedAction `json:"actions,omitempty"`
	Next    *NextAction    `json:"next,omitempty"`
}

type LinkedAction struct {
	Type  string `json:"type"`
	Href  string `json:"href"`
	Label string `json:"label"`
}

type NextAction struct {
	Type string `json:"type"`
	Href string `json:"href"`
}

type ActionError struct {
	Message string `json:"message"`
}

type ActionPostResponse struct {
	Type        string       `json:"type"`
	Transaction string       `json:"transaction"`
	Message     string       `json:"message,omitempty"`
	Links       *ActionLinks `json:"links,omitempty"`
}

type CompletedAction struct {
	Type        string       `json:"type"`
	Icon        string       `json:"icon"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Error       *ActionError `json:"error,omitempty"`
}

// ActionsRules is served at /actions.json.
type ActionsRules struct {
	Rules []ActionRule `json:"rules"`
}

type ActionRule struct {
	PathPattern string `json:"pathPattern"`
	APIPath     string `json:"apiPath"`
}

func DefaultActionsRules() ActionsRules {
	return ActionsRules{Rules: []ActionRule{
		{PathPattern: "/blinks/**", APIPath: "/blinks/**"},
	}}
}
