package kakao

// Response is the 2.0 template envelope every chat-facing operation
// returns.  All of our responses are a single text card with one
// "restart" button, so the builder below is the only constructor.
type Response struct {
	Version  string   `json:"version"`
	Template Template `json:"template"`
}

type Template struct {
	Outputs []Output `json:"outputs"`
}

type Output struct {
	TextCard TextCard `json:"textCard"`
}

type TextCard struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Buttons     []Button `json:"buttons"`
}

type Button struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	MessageText string `json:"messageText"`
}

// restartLabel is the single action control offered on every card.
const restartLabel = "처음으로"

// Card builds the uniform text card response used for both success and
// rejection outcomes.
func Card(title, description string) Response {
	return Response{
		Version: "2.0",
		Template: Template{
			Outputs: []Output{{
				TextCard: TextCard{
					Title:       title,
					Description: description,
					Buttons: []Button{{
						Label:       restartLabel,
						Action:      "block",
						MessageText: restartLabel,
					}},
				},
			}},
		},
	}
}

// Status is the simple payload returned by parameter validation webhooks.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// OK reports a successful validation.
func OK() Status { return Status{Status: "SUCCESS"} }

// Fail reports a failed validation with a user-facing reason.
func Fail(message string) Status { return Status{Status: "FAIL", Message: message} }
