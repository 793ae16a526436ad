package handlers

// Ограничения на ввод при входе. Проверяется только наличие значения и
// разумная длина; формат email не проверяется.
const (
	EmailMaxLength    = 254
	PasswordMaxLength = 128

	// Время слота вида "05:00 PM"
	SlotLabelMaxLength = 8

	UserQueryMaxLength = 100
	NoteMaxLength      = 1000
)
