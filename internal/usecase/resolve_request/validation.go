package resolve_request

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestID == "" {
		return fmt.Errorf("%w: requestID is required", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	switch req.Action {
	case ActionAccept, ActionDecline, ActionCancel:
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
}
