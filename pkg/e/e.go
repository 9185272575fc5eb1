package e

import "fmt"

var (
	// Ошибки хранилища каталога
	ErrConstraintViolation = fmt.Errorf("constraint violation")
	ErrStorageUnavailable  = fmt.Errorf("storage unavailable")

	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownDriver        = fmt.Errorf("unknown storage driver")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
	// 503 Service Unavailable
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Violation возвращает ErrConstraintViolation с описанием нарушенного правила.
func Violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstraintViolation, fmt.Sprintf(format, args...))
}

// Unavailable помечает ошибку хранилища как ErrStorageUnavailable, сохраняя исходную причину.
func Unavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStorageUnavailable, err)
}
