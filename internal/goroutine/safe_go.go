package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/gigflow/gigflow-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
// Используется для фоновых задач, падение которых не должно ронять процесс,
// прежде всего для отправки уведомлений после коммита найма.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				msg := fmt.Sprintf("panic in goroutine: %v\nstack:\n%s", r, debug.Stack())
				if logger.Log != nil {
					logger.Log.Error(msg)
				} else {
					fmt.Println("[ERROR] " + msg)
				}
			}
		}()
		fn()
	}()
}
