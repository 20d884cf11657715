package repositories

// ReserveResult результат атомарного резервирования одного доступа по квоте ссылки.
type ReserveResult int

const (
	ReserveExhausted ReserveResult = iota // Квота исчерпана, счетчик не изменился
	ReserveReserved                       // Счетчик увеличен на единицу
)

func (r ReserveResult) String() string {
	if r == ReserveReserved {
		return "reserved"
	}
	return "exhausted"
}

// LinkFlags изменение административных флагов ссылки. nil поле не меняется.
type LinkFlags struct {
	IsDeleted *bool
	IsBanned  *bool
}
