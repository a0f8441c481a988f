package reject_extension

// RejectExtensionRequest HTTP request model, тело необязательно
type RejectExtensionRequest struct {
	Notes *string `json:"notes,omitempty"`
}
