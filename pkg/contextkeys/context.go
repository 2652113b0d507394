package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому хранится *gorm.DB (пул или транзакция)
const DBContextKey = contextKey("db")

// AdminIDKey - ключ gin.Context с id администратора из JWT
const AdminIDKey = "adminID"
