package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const maxLogSize = 2 * 1024 * 1024 // 2MB

// RotatingWriter пишет в файл и при превышении размера оставляет одну копию (.1)
type RotatingWriter struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	size    int64
	maxSize int64
}

// Setup направляет стандартный логгер одновременно в stdout и в файл.
func Setup(logPath string) (*RotatingWriter, error) {
	rw, err := NewRotatingWriter(logPath, maxLogSize)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rw))
	return rw, nil
}

func NewRotatingWriter(logPath string, maxSize int64) (*RotatingWriter, error) {
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxSize {
		if err := os.Truncate(logPath, 0); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	size := int64(0)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	return &RotatingWriter{
		file:    f,
		path:    logPath,
		size:    size,
		maxSize: maxSize,
	}, nil
}

func (w *RotatingWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err = w.file.Write(p)
	w.size += int64(n)

	if err == nil && w.size > w.maxSize {
		err = w.rotate()
	}
	return n, err
}

// rotate переносит файл в .1 и начинает новый. Если переименовать не удалось,
// запись продолжается в текущий файл, а ошибка возвращается вызывающему.
func (w *RotatingWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	renameErr := os.Rename(w.path, w.path+".1")
	if renameErr != nil {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(w.path, flags, 0644)
	if err != nil {
		return fmt.Errorf("reopen log file: %w", err)
	}
	w.file = f

	if renameErr != nil {
		return fmt.Errorf("rotate log file: %w", renameErr)
	}
	w.size = 0
	return nil
}

func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
