package response

import "github.com/gofiber/fiber/v3"

const (
	StatusSuccess = "SUCCESS"

	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageError               = "Error"
	MessageInternalServerError = "Something went wrong"
)

// Envelope is the body of every JSON response. Server errors carry only
// Status, client errors only Message.
type Envelope struct {
	Status     string `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	DeletedJob any    `json:"deletedJob,omitempty"`
}

func Success(c fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Status: StatusSuccess, Message: message, Data: data})
}

func Deleted(c fiber.Ctx, message string, deleted any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Status: StatusSuccess, Message: message, DeletedJob: deleted})
}

// List renders a bare {data:[...]} body.
func List(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Data: data})
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	st := normalizeStatus(status)
	if st >= fiber.StatusInternalServerError {
		return c.Status(st).JSON(Envelope{Status: MessageInternalServerError, Data: data})
	}
	return c.Status(st).JSON(Envelope{Message: normalizeMessage(message, st), Data: data})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return DefaultMessageForStatus(status)
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
