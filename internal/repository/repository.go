package repository

// postgres error codes
const (
	pgErrUniqueViolationCode = "23505"
	pgErrCheckViolationCode  = "23514"
)
