package logger

import (
	"io"
	"os"
)

// newMultiWriter возвращает writer, дублирующий записи в файл и stdout
func newMultiWriter(file *os.File) io.Writer {
	return io.MultiWriter(file, os.Stdout)
}
