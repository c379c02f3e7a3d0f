package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrInvalidProductID     = fmt.Errorf("invalid product id")
	ErrFileTooLarge         = fmt.Errorf("file is too large")
	ErrEmptyImport          = fmt.Errorf("import file is empty")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
