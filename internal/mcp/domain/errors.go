package domain

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/aikira.quest/internal/platform/errors"
)

// toolError localizes a domain error before it crosses the tool boundary.
// Coded errors format through the message catalog, and the localized text is
// what MCP clients see as the tool error.
func toolError(err error) error {
	if err == nil {
		return nil
	}
	st := status.Convert(apperrors.HandleError(err, apperrors.DefaultLocale))
	for _, detail := range st.Details() {
		if msg, ok := detail.(*errdetails.LocalizedMessage); ok {
			return errors.New(msg.GetMessage())
		}
	}
	return errors.New(st.Message())
}
