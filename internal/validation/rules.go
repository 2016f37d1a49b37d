package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error

	// буквы, цифры, '-', '_', '+', '.', разделители '#' и любые пробелы
	// из unicode.IsSpace, на которых режет tagfilter.Parse
	hashtagsPattern = regexp.MustCompile(`^[\p{L}\p{N}#_\-+.\s\x{0B}\x{85}\p{Z}]*$`)
)

// Register добавляет собственные правила в валидатор gin
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = registerCustomRules(v)
	})
	return registerErr
}

// New создаёт отдельный валидатор с тегом `validate` и теми же правилами,
// им пользуются сервисы
func New() *validator.Validate {
	v := validator.New()
	if err := registerCustomRules(v); err != nil {
		panic(err)
	}
	return v
}

func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		// 'hashtags': строка фильтра вида "#python #web"
		"hashtags": validateHashtags,
		// 'notblank': не пустая после обрезки пробелов
		"notblank": validateNotBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation tag %q: %w", tag, err)
		}
	}
	return nil
}

func validateHashtags(fl validator.FieldLevel) bool {
	return hashtagsPattern.MatchString(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Describe превращает ошибки валидатора в map поле -> правило
func Describe(err error) map[string]string {
	var verrs validator.ValidationErrors
	details := make(map[string]string)
	if !errors.As(err, &verrs) {
		details["request"] = err.Error()
		return details
	}
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[toSnake(fe.Field())] = rule
	}
	return details
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
