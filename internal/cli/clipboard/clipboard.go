package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported — в системе нет доступного буфера обмена (например, нет xclip/xsel).
var ErrUnsupported = errors.New("clipboard is not available on this system")

// Writer записывает текст в буфер обмена.
type Writer interface {
	WriteAll(text string) error
}

// System — системный буфер обмена.
type System struct{}

var _ Writer = System{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory хранит последнее записанное значение; используется, когда системный буфер недоступен.
type Memory struct {
	Last string
}

func (m *Memory) WriteAll(text string) error {
	m.Last = text
	return nil
}
