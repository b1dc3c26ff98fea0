package bikes

import "errors"

var (
	// ErrBikeNotFound возвращается, когда велосипед не найден
	ErrBikeNotFound = errors.New("bike not found")

	// ErrDuplicatePlate возвращается, когда номерной знак уже зарегистрирован
	ErrDuplicatePlate = errors.New("bike with this number plate already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
