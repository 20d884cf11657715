package controllers

import "errors"

// Ошибки.
var (
	ErrRecordNotFound     = errors.New("record not found")                   // Запись не найдена
	ErrInternal           = errors.New("internal error")                     // Прочая ошибка
	ErrInvalidCoordinates = errors.New("latitude and longitude are invalid") // Координаты вне диапазона
	ErrBadRequest         = errors.New("bad request")                        // Тело или параметры не разобраны
)
