package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для опциональных полей фильтров и моделей
func Ptr[T any](v T) *T {
	return &v
}
