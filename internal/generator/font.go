package generator

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	boldFontOnce   sync.Once
	boldFontSource *text.FontSource
	boldFontErr    error
)

// loadBoldFont 解析一次内置的 Go Bold 字体，之后只读共享。
// FontSource 内部缓存由其自身的锁保护。
func loadBoldFont() (*text.FontSource, error) {
	boldFontOnce.Do(func() {
		boldFontSource, boldFontErr = text.NewFontSource(gobold.TTF)
		if boldFontErr != nil {
			boldFontErr = fmt.Errorf("load bold font: %w", boldFontErr)
		}
	})
	return boldFontSource, boldFontErr
}
