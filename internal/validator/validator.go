package validator

import (
	"github.com/go-playground/validator/v10"
)

// echoのValidatorとして登録する。
// ハンドラ側は c.Validate(&req) のエラーを400に変換する。
type RequestValidator struct {
	validate *validator.Validate
}

func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
