package storage

import (
	"fmt"
	"os"
)

// writeFileAtomic пишет данные во временный файл и переименовывает его в целевой.
func writeFileAtomic(targetPath string, data []byte) error {
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("storage: не удалось создать файл: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}
	return nil
}

// fileExists сообщает, существует ли путь.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
