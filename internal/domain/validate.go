package domain

import "github.com/go-playground/validator/v10"

// 与 gin binding 同一套校验器，service 层直接调用时也生效
var validate = validator.New()

func validEmail(s string) bool { return validate.Var(s, "required,email") == nil }
