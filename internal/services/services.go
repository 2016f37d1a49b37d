package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/validation"
	"github.com/thereayou/colabnow/internal/websocket"
	"gorm.io/gorm"
)

var validate = validation.New()

// Publisher доставляет событие во все открытые соединения пользователя
type Publisher interface {
	Publish(userID uuid.UUID, msgType websocket.MessageType, data interface{}) error
}

// PageResult - одна страница выдачи
type PageResult[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int64
}

func newPageResult[T any](items []T, page database.Page, total int64) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{Items: items, Number: page.Number, Size: page.Size, Total: total}
}

func (p PageResult[T]) HasNext() bool {
	return int64(p.Number)*int64(p.Size) < p.Total
}

func (p PageResult[T]) HasPrev() bool {
	return p.Number > 1
}

// paginate режет уже загруженный срез на страницы
func paginate[T any](items []T, page database.Page) PageResult[T] {
	page = page.Normalized()
	total := int64(len(items))
	start := page.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := len(items)
	if start+page.Size < end {
		end = start + page.Size
	}
	return newPageResult(items[start:end], page, total)
}

func pageOf(number, size int) database.Page {
	return database.Page{Number: number, Size: size}.Normalized()
}

func validateInput(in interface{}) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.ValidationError(validation.Describe(err))
		}
		return err
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
