package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateError 识别唯一键冲突(1062), 幂等操作据此转为 no-op
func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
