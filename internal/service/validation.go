package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const maxProductNameLen = 200

// minUnitPrice 单价下限 0.01
var minUnitPrice = decimal.New(1, -2)

// FieldError 单字段校验失败
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors 校验失败集合。所有字段一次性校验完再汇总返回，
// 不在第一个错误处短路。
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields 转为 field → message 映射（响应体用）
func (v ValidationErrors) Fields() map[string]string {
	m := make(map[string]string, len(v))
	for _, fe := range v {
		m[fe.Field] = fe.Message
	}
	return m
}

func validateProductName(name string) *FieldError {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "productName", Message: "productName is required"}
	}
	if utf8.RuneCountInString(name) > maxProductNameLen {
		return &FieldError{Field: "productName", Message: fmt.Sprintf("productName must be at most %d characters", maxProductNameLen)}
	}
	return nil
}

func validateQuantity(quantity int) *FieldError {
	if quantity < 1 {
		return &FieldError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	return nil
}

func validateUnitPrice(price decimal.Decimal) *FieldError {
	if price.LessThan(minUnitPrice) {
		return &FieldError{Field: "unitPrice", Message: "unitPrice must be at least 0.01"}
	}
	return nil
}
