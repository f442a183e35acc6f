package browser

import (
	"errors"

	"github.com/skratchdot/open-golang/open"
)

// Opener открывает ссылку во внешнем браузере.
type Opener interface {
	Open(url string) error
}

// System открывает ссылку браузером по умолчанию.
type System struct{}

var _ Opener = System{}

func (System) Open(url string) error {
	if url == "" {
		return errors.New("empty url")
	}
	return open.Start(url)
}
