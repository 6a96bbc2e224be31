package wallet

import "errors"

var (
	// ErrInvalidInput is returned when an operation's arguments are rejected.
	// State is left unchanged.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned for an unknown vault id.
	ErrNotFound = errors.New("not found")
)

// InputError is an ErrInvalidInput carrying the message shown to the user.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(msg string) error {
	return &InputError{Message: msg}
}

// Messages shown for rejected input.
const (
	MsgEntryRequired   = "Please enter a category and amount."
	MsgEntryFormat     = "Please use format: Category, Amount (e.g., Food, 50000)"
	MsgSpending        = "Please enter a valid category and a positive amount."
	MsgVaultName       = "Please enter a name for the vault."
	MsgVaultGoal       = "Please enter a valid positive goal amount for the vault."
	MsgVaultAmount     = "Please enter a valid amount of zero or more."
	MsgVaultNotFound   = "That vault no longer exists."
	msgAmountMalformed = "amount is not a number"
)

// UserMessage returns the text to show a user for err.
func UserMessage(err error) string {
	var ie *InputError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ie):
		return ie.Message
	case errors.Is(err, ErrNotFound):
		return MsgVaultNotFound
	default:
		return err.Error()
	}
}
