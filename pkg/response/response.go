package response

import (
	"errors"
	"strings"
)

// Response is the reply envelope returned to the bridge for every command.
// Failures carry only a message; Data is set on success when the command has
// something to report back.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success builds a successful reply.
func Success(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Error builds a failure reply.
func Error(message string) Response {
	return Response{Success: false, Message: message}
}

// Err returns nil for a successful reply and the message as an error otherwise.
func (r Response) Err() error {
	if r.Success {
		return nil
	}
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "command failed"
	}
	return errors.New(msg)
}
