package report

import (
	"github.com/arthur-debert/sfdelta/pkg/errors"
)

// ErrorView is the machine-readable form of a failed command
type ErrorView struct {
	Error   string                 `json:"error" yaml:"error"`
	Code    string                 `json:"code,omitempty" yaml:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewErrorView describes err. Plain errors carry no code.
func NewErrorView(err error) ErrorView {
	v := ErrorView{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		v.Code = string(code)
		v.Details = errors.GetErrorDetails(err)
	}
	return v
}

// Message is the machine-readable form of a status line
type Message struct {
	Message string `json:"message" yaml:"message"`
}
