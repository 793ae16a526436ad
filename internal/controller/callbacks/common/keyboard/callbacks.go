package keyboard

// ========================
// Callback Data Patterns
// ========================

// Выбор роли до входа
const (
	RolePrefix = "role:" // role:patient
)

// Пациент: шаг записи на приём
const (
	BookDatePrefix   = "book:date:"   // book:date:2024-03-18
	BookDoctorPrefix = "book:doctor:" // book:doctor:2
	BookPeriodPrefix = "book:period:" // book:period:morning
	BookSlotPrefix   = "book:slot:"   // book:slot:7
	BookConfirm      = "book:confirm"
)

// Админ: шаг управления слотами
const (
	SlotsDoctorPrefix = "slots:doctor:" // slots:doctor:2
	SlotsDatePrefix   = "slots:date:"   // slots:date:2024-03-18
	SlotsTogglePrefix = "slots:toggle:" // slots:toggle:7
	SlotsRemovePrefix = "slots:remove:" // slots:remove:7
	SlotsAdd          = "slots:add"
	SlotsAddCustom    = "slots:add_custom"
)

// Админ: шаг управления пользователями
const (
	UsersRolePrefix   = "users:role:"   // users:role:doctor, users:role:all
	UsersTogglePrefix = "users:toggle:" // users:toggle:3
	UsersSearch       = "users:search"
	UsersClearSearch  = "users:clear"
)

// Врач: шаг заметок
const (
	NotesPatientPrefix = "notes:patient:" // notes:patient:2
	NotesAdd           = "notes:add"
)

// UsersRoleAll в callback data означает "все роли"
const UsersRoleAll = "all"
